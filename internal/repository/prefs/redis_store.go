package prefs

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const inputsKey = "datagen:last-inputs"

// GeneratorInputs is the last-used data-generator form state, reloaded on
// the next page load.
type GeneratorInputs struct {
	Prompt  string `json:"prompt"`
	Rows    string `json:"rows"`
	Columns string `json:"columns"`
}

// Store persists generator inputs in Redis under a fixed key. A nil or
// unreachable client degrades to a no-op: input persistence is a
// convenience, never a blocker.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func (s *Store) Save(ctx context.Context, inputs GeneratorInputs) error {
	if s.rdb == nil {
		return nil
	}
	data, err := json.Marshal(inputs)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, inputsKey, data, 0).Err()
}

func (s *Store) Load(ctx context.Context) (GeneratorInputs, error) {
	var inputs GeneratorInputs
	if s.rdb == nil {
		return inputs, nil
	}
	data, err := s.rdb.Get(ctx, inputsKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return inputs, nil
		}
		return inputs, err
	}
	if err := json.Unmarshal(data, &inputs); err != nil {
		return GeneratorInputs{}, err
	}
	return inputs, nil
}
