package roster

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/conn-castle/gradebook/internal/messages"
)

const (
	// StorageKey holds the serialized roster.
	StorageKey = "gradebook_students_v1"
	// ColumnsKey holds the column count so an empty roster keeps its width across restarts.
	ColumnsKey = "gradebook_columns_v1"
	// DefaultColumns is the column count of a fresh roster.
	DefaultColumns = 2
)

var (
	// ErrNameRequired is returned by Add when both surname and name are blank.
	ErrNameRequired = errors.New(messages.RosterNameRequired)
	// ErrInvalidGrade is returned by ParseGrade for text outside the grade choices.
	ErrInvalidGrade = errors.New(messages.RosterInvalidGrade)
)

// KV is the persistence backend the store saves into.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// IDFunc generates student identities.
type IDFunc func() string

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDFunc overrides identity generation.
func WithIDFunc(fn IDFunc) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithDefaultColumns sets the column count used when storage holds no roster.
func WithDefaultColumns(n int) Option {
	return func(s *Store) {
		if n >= 0 {
			s.columns = n
		}
	}
}

// Store owns the roster and is the only sanctioned way to read or change it.
// Every mutation is persisted before it returns; a failed save rolls the
// in-memory state back so the store is never ahead of storage.
// Store is not safe for concurrent use.
type Store struct {
	kv       KV
	logger   *zap.Logger
	newID    IDFunc
	students []Student
	columns  int
}

type snapshot struct {
	students []Student
	columns  int
}

// Open loads the roster from kv. Missing or corrupt content yields an empty
// roster; only a backend read failure is returned as an error.
func Open(kv KV, opts ...Option) (*Store, error) {
	if kv == nil {
		return nil, errors.New(messages.RosterKVRequired)
	}
	s := &Store{
		kv:       kv,
		logger:   zap.NewNop(),
		newID:    uuid.NewString,
		students: []Student{},
		columns:  DefaultColumns,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	data, ok, err := s.kv.Get(StorageKey)
	if err != nil {
		return fmt.Errorf(messages.RosterLoadFailedFmt, err)
	}
	if ok && len(data) > 0 {
		var loaded []Student
		if err := json.Unmarshal(data, &loaded); err != nil {
			s.logger.Warn("discarding unreadable roster", zap.String("key", StorageKey), zap.Error(err))
		} else if len(loaded) > 0 {
			s.columns = len(loaded[0].Grades)
			for i := range loaded {
				loaded[i].Grades = resize(loaded[i].Grades, s.columns)
			}
			s.students = loaded
			s.logger.Debug("roster loaded", zap.Int("students", len(loaded)), zap.Int("columns", s.columns))
			return nil
		}
	}

	raw, ok, err := s.kv.Get(ColumnsKey)
	if err != nil {
		return fmt.Errorf(messages.RosterLoadFailedFmt, err)
	}
	if ok {
		n, convErr := strconv.Atoi(strings.TrimSpace(string(raw)))
		if convErr != nil || n < 0 {
			s.logger.Warn("ignoring unreadable column count", zap.ByteString("value", raw))
		} else {
			s.columns = n
		}
	}
	return nil
}

// Students returns a copy of the full roster in insertion order.
func (s *Store) Students() []Student {
	return cloneAll(s.students)
}

// Len returns the number of students.
func (s *Store) Len() int {
	return len(s.students)
}

// Columns returns the current column count.
func (s *Store) Columns() int {
	return s.columns
}

// Get returns the student with id.
func (s *Store) Get(id string) (Student, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return Student{}, false
	}
	return s.students[idx].clone(), true
}

// Add appends a student with trimmed names and an empty grade row.
func (s *Store) Add(surname string, name string) (Student, error) {
	surname = strings.TrimSpace(surname)
	name = strings.TrimSpace(name)
	if surname == "" && name == "" {
		return Student{}, ErrNameRequired
	}

	student := Student{
		ID:      s.newID(),
		Surname: surname,
		Name:    name,
		Grades:  emptyGrades(s.columns),
	}
	prev := s.snapshot()
	s.students = append(s.students, student)
	if err := s.commit(prev); err != nil {
		return Student{}, err
	}
	s.logger.Info("student added", zap.String("id", student.ID), zap.String("surname", surname), zap.String("name", name))
	return student.clone(), nil
}

// Remove deletes the student with id. It reports whether a record was removed.
func (s *Store) Remove(id string) (bool, error) {
	prev := s.snapshot()
	idx := s.indexOf(id)
	if idx >= 0 {
		next := make([]Student, 0, len(s.students)-1)
		next = append(next, s.students[:idx]...)
		next = append(next, s.students[idx+1:]...)
		s.students = next
	}
	if err := s.commit(prev); err != nil {
		return false, err
	}
	if idx >= 0 {
		s.logger.Info("student removed", zap.String("id", id))
	}
	return idx >= 0, nil
}

// SetGrade replaces the grade at index for the student with id.
// Unknown ids and out-of-range indexes are no-ops; it reports whether a cell was written.
func (s *Store) SetGrade(id string, index int, value Grade) (bool, error) {
	prev := s.snapshot()
	idx := s.indexOf(id)
	changed := idx >= 0 && index >= 0 && index < len(s.students[idx].Grades)
	if changed {
		grades := make([]Grade, len(s.students[idx].Grades))
		copy(grades, s.students[idx].Grades)
		grades[index] = value
		s.students[idx].Grades = grades
	}
	if err := s.commit(prev); err != nil {
		return false, err
	}
	if changed {
		s.logger.Debug("grade set", zap.String("id", id), zap.Int("index", index), zap.String("value", string(value)))
	}
	return changed, nil
}

// AddColumn appends an empty grade cell to every student.
func (s *Store) AddColumn() error {
	prev := s.snapshot()
	s.columns++
	s.resizeAll()
	if err := s.commit(prev); err != nil {
		return err
	}
	s.logger.Info("column added", zap.Int("columns", s.columns))
	return nil
}

// RemoveColumn drops the last grade cell of every student. Grades in that
// column are lost. It is a no-op when there are no columns.
func (s *Store) RemoveColumn() error {
	prev := s.snapshot()
	if s.columns > 0 {
		s.columns--
		s.resizeAll()
	}
	if err := s.commit(prev); err != nil {
		return err
	}
	s.logger.Info("column removed", zap.Int("columns", s.columns))
	return nil
}

// ClearAll empties the roster and deletes the persisted entry.
// Confirmation is the caller's job.
func (s *Store) ClearAll() error {
	prev := s.snapshot()
	s.students = []Student{}
	if err := s.kv.Delete(StorageKey); err != nil {
		s.restore(prev)
		return fmt.Errorf(messages.RosterClearFailedFmt, err)
	}
	s.logger.Info("roster cleared", zap.Int("removed", len(prev.students)))
	return nil
}

// Query returns students whose "surname name" contains substring, ignoring case.
// An empty substring returns every student.
func (s *Store) Query(substring string) []Student {
	needle := strings.ToLower(substring)
	out := make([]Student, 0, len(s.students))
	for _, student := range s.students {
		if strings.Contains(strings.ToLower(student.FullName()), needle) {
			out = append(out, student.clone())
		}
	}
	return out
}

func (s *Store) indexOf(id string) int {
	for i, student := range s.students {
		if student.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) resizeAll() {
	next := make([]Student, len(s.students))
	for i, student := range s.students {
		student.Grades = resize(student.Grades, s.columns)
		next[i] = student
	}
	s.students = next
}

// snapshot captures state for rollback. Mutations replace grade slices
// rather than writing into them, so a shallow copy of the records is enough.
func (s *Store) snapshot() snapshot {
	students := make([]Student, len(s.students))
	copy(students, s.students)
	return snapshot{students: students, columns: s.columns}
}

func (s *Store) restore(prev snapshot) {
	s.students = prev.students
	s.columns = prev.columns
}

// commit serializes the whole roster to storage, restoring prev on failure.
func (s *Store) commit(prev snapshot) error {
	if err := s.save(prev); err != nil {
		s.restore(prev)
		s.logger.Error("save failed; change rolled back", zap.Error(err))
		return err
	}
	return nil
}

// save writes the column count before the roster. A non-empty roster takes its
// width from its records on load, so only an empty roster depends on
// ColumnsKey; if the roster write fails, prev's count is written back.
func (s *Store) save(prev snapshot) error {
	data, err := json.Marshal(s.students)
	if err != nil {
		return fmt.Errorf(messages.RosterEncodeFailedFmt, err)
	}
	if err := s.kv.Set(ColumnsKey, []byte(strconv.Itoa(s.columns))); err != nil {
		return fmt.Errorf(messages.RosterSaveFailedFmt, err)
	}
	if err := s.kv.Set(StorageKey, data); err != nil {
		if prev.columns != s.columns {
			if undoErr := s.kv.Set(ColumnsKey, []byte(strconv.Itoa(prev.columns))); undoErr != nil {
				s.logger.Warn("could not restore column count", zap.Error(undoErr))
			}
		}
		return fmt.Errorf(messages.RosterSaveFailedFmt, err)
	}
	return nil
}
