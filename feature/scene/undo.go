package scene

import "errors"

// ErrNothingToUndo is returned by Undo when the history is empty.
var ErrNothingToUndo = errors.New("nothing to undo")

// MaxUndoSteps bounds the undo history.
const MaxUndoSteps = 32

type snapshot struct {
	label string
	doc   *Document
}

// PushUndo records the current state under label.
func (s *Scene) PushUndo(label string) {
	s.pushes++
	s.undo = append(s.undo, snapshot{label: label, doc: s.ToDocument()})
	if len(s.undo) > MaxUndoSteps {
		s.undo = s.undo[len(s.undo)-MaxUndoSteps:]
	}
}

// UndoPushes counts every PushUndo since the scene was created. Unlike the
// history length it keeps growing once the history is full.
func (s *Scene) UndoPushes() int {
	return s.pushes
}

// UndoLabels returns the recorded steps, oldest first.
func (s *Scene) UndoLabels() []string {
	out := make([]string, len(s.undo))
	for i, snap := range s.undo {
		out[i] = snap.label
	}
	return out
}

// Undo restores the most recent snapshot and returns its label.
// Subscribers are kept and the scene is marked changed.
func (s *Scene) Undo() (string, error) {
	if len(s.undo) == 0 {
		return "", ErrNothingToUndo
	}
	last := s.undo[len(s.undo)-1]
	restored, err := FromDocument(last.doc)
	if err != nil {
		return "", err
	}
	s.undo = s.undo[:len(s.undo)-1]

	s.objects = restored.objects
	s.collections = restored.collections
	for _, o := range s.objects {
		o.scene = s
	}
	for _, c := range s.collections {
		c.scene = s
	}
	s.touch()
	return last.label, nil
}
