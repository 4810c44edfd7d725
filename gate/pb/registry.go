package pb

import "sync"

// Registry maps a message id to its codec. Lookups may run concurrently
// with registration.
type Registry struct {
	mux    sync.RWMutex
	codecs [256]*Codec
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register inserts or replaces the codec for id. id must be the codec's own
// id.
func (r *Registry) Register(id uint8, c *Codec) error {
	if c == nil {
		return schemaErr("", "nil codec for id %d", id)
	}
	if c.id != id {
		return schemaErr("", "codec %s registered under id %d", c, id)
	}
	r.mux.Lock()
	r.codecs[id] = c
	r.mux.Unlock()
	return nil
}

func (r *Registry) Lookup(id uint8) *Codec {
	r.mux.RLock()
	c := r.codecs[id]
	r.mux.RUnlock()
	return c
}

// LookupName 线性查找，仅用于工具
func (r *Registry) LookupName(name string) *Codec {
	r.mux.RLock()
	defer r.mux.RUnlock()
	for _, c := range r.codecs {
		if c != nil && c.name == name {
			return c
		}
	}
	return nil
}

// Codecs returns the registered codecs ordered by id.
func (r *Registry) Codecs() []*Codec {
	r.mux.RLock()
	defer r.mux.RUnlock()
	var l []*Codec
	for _, c := range r.codecs {
		if c != nil {
			l = append(l, c)
		}
	}
	return l
}

// Dispatch decodes buf with the codec registered for the id found at
// offset 2. An unknown id is an ErrUnregistered error.
func (r *Registry) Dispatch(buf []byte) (uint8, Object, error) {
	id, err := PeekIdentifier(buf)
	if err != nil {
		return 0, nil, err
	}
	c := r.Lookup(id)
	if c == nil {
		return id, nil, unregisteredErr(id)
	}
	obj, err := c.Deserialize(buf)
	return id, obj, err
}
