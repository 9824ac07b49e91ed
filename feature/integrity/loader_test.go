package integrity

import (
	"testing"

	"collbool/core/reconcile"
	"collbool/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	mockClient := new(mocks.Client)
	// Pass nil db and store as we don't access them unless we use the service
	feature := NewFeature(mockClient, testStorage, zap.NewNop(), nil, nil, reconcile.NewIdentity(""))

	assert.Equal(t, "integrity", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NotNil(t, feature.Service())

	app := fiber.New()
	err := feature.Load(app)
	assert.NoError(t, err)
}
