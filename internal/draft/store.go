package draft

import (
	"sync"

	"quiz-builder/internal/domain"
	"quiz-builder/internal/util"
)

// Question is a question still being authored. ID is a temporary client-side id.
type Question struct {
	ID      string
	Text    string
	Type    domain.QuestionType
	Options []string
}

// WithType switches the question type. Checkbox starts from an empty option
// list and any other type drops the options.
func (q Question) WithType(t domain.QuestionType) Question {
	if q.Type == t {
		return q
	}
	q.Type = t
	if t.HasOptions() {
		q.Options = []string{}
	} else {
		q.Options = nil
	}
	return q
}

func (q Question) clone() Question {
	if q.Options != nil {
		q.Options = append([]string{}, q.Options...)
	}
	return q
}

// Snapshot is a copy of the draft state; mutating it does not affect the store.
type Snapshot struct {
	Title     string
	Questions []Question
}

// Store holds one quiz being authored. It performs no validation.
type Store struct {
	mu        sync.Mutex
	title     string
	questions []Question

	subs    map[int]func(Snapshot)
	nextSub int
	newID   func() string
}

func NewStore() *Store {
	return &Store{
		subs:  make(map[int]func(Snapshot)),
		newID: util.NewULID,
	}
}

func (s *Store) SetTitle(title string) {
	s.mutate(func() { s.title = title })
}

// AddQuestion appends q under a fresh temporary id and returns the stored copy.
func (s *Store) AddQuestion(q Question) Question {
	var added Question
	s.mutate(func() {
		added = q.clone()
		added.ID = s.newID()
		s.questions = append(s.questions, added)
	})
	return added.clone()
}

// UpdateQuestion replaces the question with id in place, keeping its id and position.
func (s *Store) UpdateQuestion(id string, q Question) bool {
	found := false
	s.mutate(func() {
		for i := range s.questions {
			if s.questions[i].ID == id {
				q = q.clone()
				q.ID = id
				s.questions[i] = q
				found = true
				return
			}
		}
	})
	return found
}

func (s *Store) RemoveQuestion(id string) bool {
	found := false
	s.mutate(func() {
		for i := range s.questions {
			if s.questions[i].ID == id {
				s.questions = append(s.questions[:i], s.questions[i+1:]...)
				found = true
				return
			}
		}
	})
	return found
}

// Reset clears the title and every question.
func (s *Store) Reset() {
	s.mutate(func() {
		s.title = ""
		s.questions = nil
	})
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every change.
// The returned func removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// mutate applies change under the lock, then notifies subscribers outside it
// so they may call back into the store.
func (s *Store) mutate(change func()) {
	s.mu.Lock()
	change()
	snap := s.snapshotLocked()
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{Title: s.title, Questions: make([]Question, len(s.questions))}
	for i, q := range s.questions {
		snap.Questions[i] = q.clone()
	}
	return snap
}
