package memory

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"

	"society-quiz-service/internal/domain"
)

// QuestionLoader fetches a question bank from a backing store (file, Postgres).
type QuestionLoader interface {
	LoadQuestionBank(ctx context.Context, bankID string) (domain.QuestionBank, error)
}

// QuestionBank caches question banks with TTL to avoid repeated loads.
type QuestionBank struct {
	loader QuestionLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex

	mu    sync.RWMutex
	cache map[string]cachedBank
}

type cachedBank struct {
	bank      domain.QuestionBank
	expiresAt time.Time
}

// NewQuestionBank wraps loader with a cache. A non-positive ttl caches forever.
func NewQuestionBank(loader QuestionLoader, ttl time.Duration) *QuestionBank {
	return &QuestionBank{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedBank),
	}
}

func (r *QuestionBank) GetQuestionBank(ctx context.Context, bankID string) (domain.QuestionBank, error) {
	if bank, ok := r.cached(bankID); ok {
		return bank, nil
	}

	result, err, _ := r.sf.Do(bankID, func() (interface{}, error) {
		if bank, ok := r.cached(bankID); ok {
			return bank, nil
		}

		bank, err := r.loader.LoadQuestionBank(ctx, bankID)
		if err != nil {
			return domain.QuestionBank{}, err
		}
		if err := bank.Validate(); err != nil {
			return domain.QuestionBank{}, err
		}

		r.mu.Lock()
		r.cache[bankID] = cachedBank{
			bank:      bank,
			expiresAt: r.expiry(),
		}
		r.mu.Unlock()
		return bank, nil
	})
	if err != nil {
		return domain.QuestionBank{}, err
	}
	return result.(domain.QuestionBank), nil
}

func (r *QuestionBank) cached(bankID string) (domain.QuestionBank, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.cache[bankID]
	if !ok {
		return domain.QuestionBank{}, false
	}
	if !entry.expiresAt.IsZero() && !entry.expiresAt.After(r.clock()) {
		return domain.QuestionBank{}, false
	}
	return entry.bank, true
}

func (r *QuestionBank) expiry() time.Time {
	if r.ttl <= 0 {
		return time.Time{}
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	jitter := time.Duration(r.rnd.Int63n(jitterMax + 1))
	r.rndMu.Unlock()
	return r.clock().Add(r.ttl + jitter)
}

// StaticQuestionLoader is a loader backed by an in-memory map (useful for tests/demos).
type StaticQuestionLoader struct {
	banks map[string]domain.QuestionBank
}

func NewStaticQuestionLoader(banks ...domain.QuestionBank) *StaticQuestionLoader {
	m := make(map[string]domain.QuestionBank, len(banks))
	for _, b := range banks {
		m[b.ID] = b
	}
	return &StaticQuestionLoader{banks: m}
}

func (l *StaticQuestionLoader) LoadQuestionBank(_ context.Context, bankID string) (domain.QuestionBank, error) {
	if bank, ok := l.banks[bankID]; ok {
		return bank, nil
	}
	return domain.QuestionBank{}, fmt.Errorf("%w: %s", domain.ErrQuestionBankNotFound, bankID)
}

// ReadQuestionBankFile decodes a YAML question bank.
func ReadQuestionBankFile(path string) (domain.QuestionBank, error) {
	var bank domain.QuestionBank
	data, err := os.ReadFile(path)
	if err != nil {
		return bank, fmt.Errorf("read question bank: %w", err)
	}
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return bank, fmt.Errorf("%w: %v", domain.ErrInvalidQuestionBank, err)
	}
	return bank, nil
}

// FileQuestionLoader serves the single bank stored in a YAML file. The file is re-read on
// every load so edits are picked up when the cache expires.
type FileQuestionLoader struct {
	path string
}

func NewFileQuestionLoader(path string) *FileQuestionLoader {
	return &FileQuestionLoader{path: path}
}

func (l *FileQuestionLoader) LoadQuestionBank(_ context.Context, bankID string) (domain.QuestionBank, error) {
	bank, err := ReadQuestionBankFile(l.path)
	if err != nil {
		return bank, err
	}
	if bank.ID == "" {
		bank.ID = bankID
	}
	if bank.ID != bankID {
		return domain.QuestionBank{}, fmt.Errorf("%w: %s", domain.ErrQuestionBankNotFound, bankID)
	}
	return bank, nil
}
