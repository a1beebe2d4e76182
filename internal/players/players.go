// Package players provides a factory of AI players from configuration strings.
// It also allows player providers to register themselves: see package players/default.
package players

import (
	"sync"

	"github.com/janpfeifer/goZero/internal/generics"
	"github.com/janpfeifer/goZero/internal/parameters"
	"github.com/janpfeifer/goZero/internal/state"
	"github.com/pkg/errors"
)

// Player is anything that is able to play the game.
type Player interface {
	// Play returns the move chosen for the player to move at board. The board is not changed.
	Play(board *state.Board) (state.Move, error)

	// Observe informs the player of a move played by the opponent, so it can update its
	// internal state (e.g. reuse a search tree). Players may ignore it.
	Observe(move state.Move) error

	// String returns a description of the player.
	String() string
}

// Module creates a new player from the parameters. It should pop (parameters.PopParamOr)
// the keys it uses.
type Module func(params parameters.Params) (Player, error)

var (
	muModules sync.Mutex
	modules   = make(map[string]Module)
)

// RegisterModule so it can be used by any of the front-ends: players configured with the name
// as a key are created with module.
func RegisterModule(name string, module Module) {
	muModules.Lock()
	defer muModules.Unlock()
	modules[name] = module
}

// DefaultPlayerConfig is used if no configuration was given to the AI. The value may be changed
// by the program.
var DefaultPlayerConfig = "mcts"

// New creates a new AI player given the configuration string.
//
// The config is a comma-separated list of parameters with optional values, and exactly one of
// them must be the name of a registered module, e.g.: "mcts,searches=200,linear". If empty,
// DefaultPlayerConfig is used.
//
// It returns an error if any parameter is not used by the module.
func New(config string) (Player, error) {
	if config == "" {
		config = DefaultPlayerConfig
	}
	params := parameters.NewFromConfigString(config)

	muModules.Lock()
	if len(modules) == 0 {
		muModules.Unlock()
		return nil, errors.New("no registered players. Perhaps you need to import _ \"github.com/janpfeifer/goZero/internal/players/default\" to your binary ?")
	}
	var moduleName string
	for name := range generics.SortedKeys(modules) {
		if _, found := params[name]; !found {
			continue
		}
		if moduleName != "" {
			muModules.Unlock()
			return nil, errors.Errorf("multiple players (%q and %q) defined in %q", moduleName, name, config)
		}
		moduleName = name
	}
	if moduleName == "" {
		registered := generics.SortedKeysSlice(modules)
		muModules.Unlock()
		return nil, errors.Errorf("no player defined in %q, registered players are %q", config, registered)
	}
	module := modules[moduleName]
	muModules.Unlock()

	delete(params, moduleName)
	player, err := module(params)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to create AI player %q", config)
	}
	if err = parameters.CheckAllConsumed(params); err != nil {
		return nil, errors.WithMessagef(err, "AI player %q", config)
	}
	return player, nil
}
