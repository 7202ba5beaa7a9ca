// Package tokens keeps token metadata (decimals, symbols) in memory, backed
// by BoltDB so restarts keep previously seen tokens.
package tokens

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	container "github.com/thehyperflames/dicontainer-go"

	"github.com/orderflow-labs/quote-engine/internal/adapters/persistence"
	"github.com/orderflow-labs/quote-engine/internal/common"
	"github.com/orderflow-labs/quote-engine/internal/config"
	"github.com/orderflow-labs/quote-engine/internal/domain"
	"github.com/orderflow-labs/quote-engine/internal/metrics"
	"github.com/orderflow-labs/quote-engine/internal/services"
)

const TOKENS_SERVICE = "tokens-service"

type Service struct {
	container.BaseDIInstance
	logger *services.ServiceLogger

	mu        sync.RWMutex
	byAddress map[string]*domain.TokenInfo

	storage *persistence.Storage
	config  *config.TokensConfig
}

// NewInMemory builds a registry that is not managed by the container and
// never touches storage.
func NewInMemory(seed []*domain.TokenInfo) *Service {
	svc := &Service{
		byAddress: make(map[string]*domain.TokenInfo),
		config:    &config.TokensConfig{PersistenceEnabled: false},
	}
	svc.Seed(seed)
	return svc
}

func (svc *Service) ID() string {
	return TOKENS_SERVICE
}

func (svc *Service) Configure(c container.IContainer) error {
	svc.logger = services.NewServiceLogger(svc)
	svc.config = c.GetConfig(config.TOKENS_CONFIG_KEY).(*config.TokensConfig)
	svc.byAddress = make(map[string]*domain.TokenInfo)
	return nil
}

func (svc *Service) Start() error {
	if seed, err := parseSeed(svc.config.Seed); err != nil {
		return err
	} else if len(seed) > 0 {
		svc.Seed(seed)
		svc.logger.Info().Int("count", len(seed)).Msg("seeded static token list")
	}

	if !svc.config.PersistenceEnabled {
		return nil
	}

	storage, err := persistence.NewStorage(svc.config.DBPath)
	if err != nil {
		return err
	}
	svc.storage = storage

	tokens, err := storage.LoadAllTokens()
	if err != nil {
		return err
	}

	svc.mu.Lock()
	for _, token := range tokens {
		svc.byAddress[registryKey(token.Address)] = token
	}
	size := len(svc.byAddress)
	svc.mu.Unlock()

	metrics.DecimalsCacheSize.Set(float64(size))
	svc.logger.Info().Int("count", size).Msg("loaded tokens from storage")
	return nil
}

func (svc *Service) Stop() error {
	if svc.storage == nil {
		return nil
	}
	return svc.storage.Close()
}

func registryKey(address string) string {
	return strings.ToLower(address)
}

// parseSeed parses "address:symbol:decimals" entries separated by commas.
func parseSeed(raw string) ([]*domain.TokenInfo, error) {
	if raw == "" {
		return nil, nil
	}

	entries := strings.Split(raw, ",")
	seed := make([]*domain.TokenInfo, 0, len(entries))
	for _, entry := range entries {
		parts := strings.Split(strings.TrimSpace(entry), ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("malformed token seed entry %q", entry)
		}
		decimals, err := strconv.ParseUint(parts[2], 10, 8)
		if err != nil {
			return nil, fmt.Errorf("token seed entry %q: %w", entry, err)
		}
		seed = append(seed, &domain.TokenInfo{
			Address:  parts[0],
			Symbol:   parts[1],
			Decimals: uint8(decimals),
		})
	}
	return seed, nil
}

// Get returns the metadata of a known token.
func (svc *Service) Get(address string) (*domain.TokenInfo, bool) {
	svc.mu.RLock()
	token, ok := svc.byAddress[registryKey(address)]
	svc.mu.RUnlock()

	if ok {
		metrics.DecimalsCacheHits.Inc()
	} else {
		metrics.DecimalsCacheMisses.Inc()
	}
	return token, ok
}

// Decimals returns the token's decimals, falling back to the chain default
// for unknown tokens.
func (svc *Service) Decimals(address string) uint8 {
	if token, ok := svc.Get(address); ok {
		return token.Decimals
	}
	return common.DefaultTokenDecimals
}

// Upsert records a token, persisting it when storage is enabled.
func (svc *Service) Upsert(token *domain.TokenInfo) error {
	svc.mu.Lock()
	svc.byAddress[registryKey(token.Address)] = token
	size := len(svc.byAddress)
	svc.mu.Unlock()

	metrics.DecimalsCacheSize.Set(float64(size))

	if svc.storage == nil {
		return nil
	}
	return svc.storage.SaveToken(token)
}

// Seed inserts tokens in bulk without touching storage, used for static
// token lists at startup.
func (svc *Service) Seed(tokens []*domain.TokenInfo) {
	svc.mu.Lock()
	for _, token := range tokens {
		svc.byAddress[registryKey(token.Address)] = token
	}
	size := len(svc.byAddress)
	svc.mu.Unlock()

	metrics.DecimalsCacheSize.Set(float64(size))
}
