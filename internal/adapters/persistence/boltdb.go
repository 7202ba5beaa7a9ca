package persistence

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	boltdb "github.com/andrew-solarstorm/bolt-db"
	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"

	"github.com/orderflow-labs/quote-engine/internal/domain"
)

const (
	TokensBucket = "tokens"

	DefaultDBPath = "./data/tokens.db"
)

type StoredToken struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

type Storage struct {
	db     *boltdb.BoltDatabase
	dbPath string
}

func NewStorage(dbPath string) (*Storage, error) {
	if dbPath == "" {
		dbPath = DefaultDBPath
	}
	os.MkdirAll(filepath.Dir(dbPath), 0755)

	db := boltdb.NewBoltDatabase(dbPath)
	if db == nil {
		return nil, fmt.Errorf("failed to open database at %s", dbPath)
	}

	log.Info().Str("path", dbPath).Msg("[tokenStorage] opened database")

	return &Storage{
		db:     db,
		dbPath: dbPath,
	}, nil
}

func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// storageKey normalizes addresses so lookups are case-insensitive.
func storageKey(address string) []byte {
	return []byte(strings.ToLower(address))
}

func (s *Storage) SaveToken(token *domain.TokenInfo) error {
	stored := StoredToken{
		Address:  token.Address,
		Symbol:   token.Symbol,
		Decimals: token.Decimals,
	}
	data, err := sonic.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	return s.db.Set(TokensBucket, storageKey(token.Address), data)
}

func (s *Storage) SaveTokenBatch(tokens []*domain.TokenInfo) error {
	if len(tokens) == 0 {
		return nil
	}

	batch := s.db.NewBatch()
	for _, token := range tokens {
		stored := StoredToken{
			Address:  token.Address,
			Symbol:   token.Symbol,
			Decimals: token.Decimals,
		}
		data, err := sonic.Marshal(stored)
		if err != nil {
			return fmt.Errorf("failed to marshal token %s: %w", token.Address, err)
		}

		value := data
		op := &boltdb.WriteOperation{
			Bucket: []byte(TokensBucket),
			Key:    storageKey(token.Address),
			Value:  &value,
			Op:     boltdb.OpSet,
		}
		if err := batch.Add(op); err != nil {
			return fmt.Errorf("failed to add token %s to batch: %w", token.Address, err)
		}
	}

	if err := batch.Execute(); err != nil {
		log.Error().Err(err).Int("count", len(tokens)).Msg("[tokenStorage] FAILED to execute batch")
		return err
	}

	log.Info().Int("count", len(tokens)).Msg("[tokenStorage] saved token batch")
	return nil
}

func (s *Storage) LoadAllTokens() ([]*domain.TokenInfo, error) {
	data, err := s.db.List(TokensBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}

	tokens := make([]*domain.TokenInfo, 0, len(data))
	unmarshalFailed := 0

	for address, value := range data {
		var stored StoredToken
		if err := sonic.Unmarshal(value, &stored); err != nil {
			log.Error().Str("address", address).Err(err).Msg("[tokenStorage] failed to unmarshal token, skipping")
			unmarshalFailed++
			continue
		}

		tokens = append(tokens, &domain.TokenInfo{
			Address:  stored.Address,
			Symbol:   stored.Symbol,
			Decimals: stored.Decimals,
		})
	}

	if unmarshalFailed > 0 {
		log.Warn().Int("failed", unmarshalFailed).Msg("[tokenStorage] some tokens could not be loaded")
	}

	return tokens, nil
}
