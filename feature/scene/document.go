package scene

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"collbool/core/reconcile"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Format is a scene document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// FormatFromPath picks the format from a file extension. Unknown
// extensions are treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Document is the serialized form of a scene.
type Document struct {
	Name        string          `json:"name" yaml:"name" validate:"required"`
	Objects     []ObjectDoc     `json:"objects" yaml:"objects" validate:"unique=Name,dive"`
	Collections []CollectionDoc `json:"collections,omitempty" yaml:"collections,omitempty" validate:"unique=Name,dive"`
}

// ObjectDoc is the serialized form of an object.
type ObjectDoc struct {
	Name     string               `json:"name" yaml:"name" validate:"required"`
	Kind     reconcile.ObjectKind `json:"kind" yaml:"kind" validate:"required,oneof=MESH OTHER"`
	Settings reconcile.Settings   `json:"settings" yaml:"settings"`
	Display  *reconcile.Display   `json:"display,omitempty" yaml:"display,omitempty"`
	Effects  []EffectDoc          `json:"effects,omitempty" yaml:"effects,omitempty" validate:"unique=Name,dive"`
	Baked    []EffectDoc          `json:"baked,omitempty" yaml:"baked,omitempty" validate:"dive"`
}

// EffectDoc is the serialized form of a modifier stack entry.
type EffectDoc struct {
	Name      string               `json:"name" yaml:"name" validate:"required"`
	Kind      reconcile.EffectKind `json:"kind" yaml:"kind" validate:"required,oneof=BOOLEAN OTHER"`
	Operation reconcile.Operation  `json:"operation,omitempty" yaml:"operation,omitempty" validate:"omitempty,oneof=DIFFERENCE UNION INTERSECT"`
	Target    string               `json:"target,omitempty" yaml:"target,omitempty"`
	Expanded  bool                 `json:"expanded,omitempty" yaml:"expanded,omitempty"`
}

// CollectionDoc is the serialized form of a collection.
type CollectionDoc struct {
	Name     string   `json:"name" yaml:"name" validate:"required"`
	Objects  []string `json:"objects,omitempty" yaml:"objects,omitempty"`
	Children []string `json:"children,omitempty" yaml:"children,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the structural rules of a document.
func (d *Document) Validate() error {
	if err := validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %s", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid scene document: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid scene document: %w", err)
	}
	return nil
}

// Decode parses a document in the given format and validates it.
func Decode(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse yaml scene: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse json scene: %w", err)
		}
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Encode serializes a document in the given format.
func Encode(doc *Document, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to encode yaml scene: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return json.MarshalIndent(doc, "", "  ")
	}
}

// FromDocument builds a scene. Effect targets and collection members that
// name missing objects are dropped, matching how the host treats weak
// references.
func FromDocument(doc *Document, opts ...Option) (*Scene, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	s := New(doc.Name, opts...)

	for _, od := range doc.Objects {
		o, err := s.AddObject(od.Name, od.Kind)
		if err != nil {
			return nil, err
		}
		o.settings = copySettings(od.Settings)
		if od.Display != nil {
			o.display = *od.Display
		}
		for _, b := range od.Baked {
			o.baked = append(o.baked, b.effect())
		}
	}
	// Targets resolve only once every object exists.
	for _, od := range doc.Objects {
		o := s.object(od.Name)
		for _, ed := range od.Effects {
			e := ed.effect()
			if e.Target != "" && s.object(e.Target) == nil {
				e.Target = ""
			}
			if err := o.stack.Add(e); err != nil {
				return nil, err
			}
		}
	}

	for _, cd := range doc.Collections {
		if _, err := s.AddCollection(cd.Name, ""); err != nil {
			return nil, err
		}
	}
	for _, cd := range doc.Collections {
		c := s.collection(cd.Name)
		for _, m := range cd.Objects {
			if s.object(m) != nil {
				c.objects = append(c.objects, m)
			}
		}
		for _, child := range cd.Children {
			if s.collection(child) == nil {
				continue
			}
			if err := s.NestCollection(cd.Name, child); err != nil {
				return nil, err
			}
		}
	}

	s.dirty = false
	return s, nil
}

// ToDocument serializes the scene.
func (s *Scene) ToDocument() *Document {
	doc := &Document{Name: s.name, Objects: make([]ObjectDoc, 0, len(s.objects))}
	for _, o := range s.objects {
		d := o.display
		od := ObjectDoc{
			Name:     o.name,
			Kind:     o.kind,
			Settings: copySettings(o.settings),
			Display:  &d,
		}
		for _, e := range o.stack.effects {
			od.Effects = append(od.Effects, effectDoc(*e))
		}
		for _, b := range o.baked {
			od.Baked = append(od.Baked, effectDoc(b))
		}
		doc.Objects = append(doc.Objects, od)
	}
	for _, c := range s.collections {
		doc.Collections = append(doc.Collections, CollectionDoc{
			Name:     c.name,
			Objects:  c.Members(),
			Children: c.Children(),
		})
	}
	return doc
}

// Clone returns an independent copy of the scene without subscribers or
// undo history.
func (s *Scene) Clone() (*Scene, error) {
	return FromDocument(s.ToDocument(), WithSettleRounds(s.settleRounds))
}

func (d EffectDoc) effect() reconcile.Effect {
	return reconcile.Effect{
		Name:      d.Name,
		Kind:      d.Kind,
		Operation: d.Operation,
		Target:    d.Target,
		Expanded:  d.Expanded,
	}
}

func effectDoc(e reconcile.Effect) EffectDoc {
	return EffectDoc{
		Name:      e.Name,
		Kind:      e.Kind,
		Operation: e.Operation,
		Target:    e.Target,
		Expanded:  e.Expanded,
	}
}
