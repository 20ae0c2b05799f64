package performance

import (
	"context"
	"math"
	"sync"

	"go.mongodb.org/mongo-driver/bson"

	"perftrack/internal/apperror"
)

// MemoryStore keeps review documents in process. Documents go through the
// same BSON encoding as MongoStore so readers see the same value types.
type MemoryStore struct {
	mu   sync.RWMutex
	docs []bson.M
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Insert(_ context.Context, review Review) error {
	raw, err := bson.Marshal(review)
	if err != nil {
		return apperror.Wrap(apperror.CodeInternal, "encode review", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return apperror.Wrap(apperror.CodeInternal, "decode review", err)
	}
	s.Put(doc)
	return nil
}

// Put stores a raw document as is. It lets callers hold documents that do
// not match the Review shape.
func (s *MemoryStore) Put(doc map[string]any) {
	copied := make(bson.M, len(doc))
	for k, v := range doc {
		copied[k] = v
	}
	s.mu.Lock()
	s.docs = append(s.docs, copied)
	s.mu.Unlock()
}

func (s *MemoryStore) FindByEmployee(_ context.Context, employeeID int64) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Document, 0)
	for _, doc := range s.docs {
		id, ok := asInt64(doc[FieldEmployeeID])
		if !ok || id != employeeID {
			continue
		}
		copied := make(Document, len(doc))
		for k, v := range doc {
			if k == "_id" {
				continue
			}
			copied[k] = v
		}
		out = append(out, copied)
	}
	return out, nil
}

func (s *MemoryStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.docs)), nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func asInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	default:
		return 0, false
	}
}
