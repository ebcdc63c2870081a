package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// fileDocument is the on-disk layout of the YAML store.
type fileDocument struct {
	Subscriptions []Subscription `yaml:"subscriptions"`
}

// FileStore keeps all subscriptions in a single YAML file. The whole file is
// rewritten on every change.
type FileStore struct {
	path string
	log  *logrus.Logger

	mu   sync.Mutex
	subs []Subscription
}

// NewFileStore loads path, or starts empty when it doesn't exist yet.
func NewFileStore(path string, log *logrus.Logger) (*FileStore, error) {
	s := &FileStore{path: path, log: log}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading store file: %w", err)
	}

	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing store file: %w", err)
	}
	for i := range doc.Subscriptions {
		if err := doc.Subscriptions[i].Validate(); err != nil {
			return nil, fmt.Errorf("subscription %s in %s: %w", doc.Subscriptions[i].ID, path, err)
		}
	}
	s.subs = doc.Subscriptions
	return s, nil
}

func (s *FileStore) List(_ context.Context, includeInactive bool) ([]Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]Subscription, 0, len(s.subs))
	for _, sub := range s.subs {
		if sub.Active || includeInactive {
			result = append(result, sub)
		}
	}
	sortByStartDate(result)
	return result, nil
}

func (s *FileStore) Get(_ context.Context, id string) (*Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	sub := s.subs[i]
	return &sub, nil
}

func (s *FileStore) Create(_ context.Context, sub *Subscription) error {
	if err := prepareCreate(sub); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(sub.ID) >= 0 {
		return fmt.Errorf("subscription %s already exists", sub.ID)
	}
	s.subs = append(s.subs, *sub)
	if err := s.save(); err != nil {
		s.subs = s.subs[:len(s.subs)-1]
		return err
	}
	return nil
}

func (s *FileStore) Update(_ context.Context, sub *Subscription) error {
	sub.UpdatedAt = time.Now().UTC()
	if err := sub.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(sub.ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, sub.ID)
	}
	prev := s.subs[i]
	s.subs[i] = *sub
	if err := s.save(); err != nil {
		s.subs[i] = prev
		return err
	}
	return nil
}

func (s *FileStore) Deactivate(ctx context.Context, id string) error {
	sub, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	sub.Active = false
	return s.Update(ctx, sub)
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) indexOf(id string) int {
	for i := range s.subs {
		if s.subs[i].ID == id {
			return i
		}
	}
	return -1
}

// save writes the document to a temp file and renames it into place. Callers
// hold s.mu.
func (s *FileStore) save() error {
	data, err := yaml.Marshal(fileDocument{Subscriptions: s.subs})
	if err != nil {
		return fmt.Errorf("marshaling subscriptions: %w", err)
	}

	dir := filepath.Dir(s.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing store file: %w", err)
	}
	s.log.WithField("count", len(s.subs)).Debug("store file saved")
	return nil
}
