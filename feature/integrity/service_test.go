package integrity

import (
	"context"
	"testing"

	"collbool/core/reconcile"
	"collbool/core/storage"
	"collbool/core/storage/mocks"
	"collbool/feature/scene"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var testStorage = storage.Config{Bucket: "test-bucket", ScenePrefix: "scenes/"}

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

// seedStore stores a converged scene "good" and an unconverged scene "raw".
func seedStore(t *testing.T) scene.Store {
	t.Helper()
	store := scene.NewFileStore(afero.NewMemMapFs(), "scenes", scene.FormatYAML)
	for _, name := range []string{"good", "raw"} {
		sc := scene.New(name)
		for _, obj := range []string{"Hull", "A"} {
			_, err := sc.AddObject(obj, reconcile.KindMesh)
			require.NoError(t, err)
		}
		_, err := sc.AddCollection("Cutters", "")
		require.NoError(t, err)
		require.NoError(t, sc.LinkObject("Cutters", "A"))
		hull, _ := sc.Get("Hull")
		hull.SetSettings(reconcile.Settings{Enabled: true, Difference: "Cutters"})
		if name == "good" {
			reconcile.New().Pass(reconcile.NewContext(), sc)
		}
		require.NoError(t, store.Save(context.Background(), sc.ToDocument()))
	}
	return store
}

func TestService_Structure(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, testStorage, zap.NewNop(), nil, nil, reconcile.Identity{})

	t.Run("CheckStructure", func(t *testing.T) {
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)

		mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(mocks.Listing())

		missing, err := svc.CheckStructure(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, []string{"scenes/"}, missing)
	})

	t.Run("FixStructure", func(t *testing.T) {
		mockClient.On("PutObject", mock.Anything, "test-bucket", "scenes/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)
		err := svc.FixStructure(context.Background(), []string{"scenes/"})
		assert.NoError(t, err)
	})
}

func TestService_Server(t *testing.T) {
	svc := NewService(nil, testStorage, nil, nil, nil, reconcile.Identity{})
	_, err := svc.CheckServer()
	assert.Error(t, err)

	db, sqlMock := setupMockDB(t)
	sqlMock.ExpectQuery("SHOW COLUMNS FROM `scenes`").WillReturnError(assert.AnError)
	svc = NewService(nil, testStorage, nil, db, nil, reconcile.Identity{})

	report, err := svc.CheckServer()
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.NotEmpty(t, report.Errors)
}

func TestService_Scenes(t *testing.T) {
	svc := NewService(nil, testStorage, zap.NewNop(), nil, seedStore(t), reconcile.NewIdentity(""))
	ctx := context.Background()

	good, err := svc.CheckScene(ctx, "good")
	require.NoError(t, err)
	assert.True(t, good.Consistent)

	raw, err := svc.CheckScene(ctx, "raw")
	require.NoError(t, err)
	assert.False(t, raw.Consistent)
	assert.NotEmpty(t, raw.Violations)

	_, err = svc.CheckScene(ctx, "missing")
	assert.ErrorIs(t, err, scene.ErrSceneNotFound)

	reports, err := svc.CheckScenes(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "good", reports[0].Scene)
	assert.Equal(t, "raw", reports[1].Scene)
}

func TestService_ScenesWithoutStore(t *testing.T) {
	svc := NewService(nil, testStorage, nil, nil, nil, reconcile.Identity{})

	_, err := svc.CheckScene(context.Background(), "good")
	assert.Error(t, err)
	_, err = svc.CheckScenes(context.Background())
	assert.Error(t, err)
}
