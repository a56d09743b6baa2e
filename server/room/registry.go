package room

import "sync"

// Registry maps room codes to live rooms, creating rooms on demand and
// forgetting them when they close.
type Registry struct {
	Config
	mu    sync.Mutex
	rooms map[string]*Room
}

// NewRegistry validates the config and creates an empty registry.
func NewRegistry(cfg Config) (*Registry, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	rg := Registry{
		Config: cfg.normalize(),
		rooms:  make(map[string]*Room),
	}
	return &rg, nil
}

// GetOrCreate returns the room with the code, creating it in the lobby
// state if none exists.
func (rg *Registry) GetOrCreate(code string) *Room {
	rg.mu.Lock()
	defer rg.mu.Unlock()
	if r, ok := rg.rooms[code]; ok {
		return r
	}
	r := newRoom(code, rg.Config, func() {
		rg.Remove(code)
	})
	rg.rooms[code] = r
	return r
}

// Get returns the room with the code, or nil.
func (rg *Registry) Get(code string) *Room {
	rg.mu.Lock()
	defer rg.mu.Unlock()
	return rg.rooms[code]
}

// Remove forgets the room with the code.
func (rg *Registry) Remove(code string) {
	rg.mu.Lock()
	defer rg.mu.Unlock()
	delete(rg.rooms, code)
}

// Len returns the number of live rooms.
func (rg *Registry) Len() int {
	rg.mu.Lock()
	defer rg.mu.Unlock()
	return len(rg.rooms)
}
