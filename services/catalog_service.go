package services

import (
	"strings"

	"github.com/Dosada05/match-tagger/models"
	"github.com/google/uuid"
)

type CreateActionTypeInput struct {
	ID             string  `json:"id,omitempty"`
	Name           string  `json:"name"`
	Icon           string  `json:"icon"`
	RequiresPlayer bool    `json:"requires_player"`
	CounterAction  *string `json:"counter_action,omitempty"`
	ReverseAction  bool    `json:"reverse_action"`
}

// UpdateActionTypeInput merges non-nil fields. An empty CounterAction clears the link.
type UpdateActionTypeInput struct {
	Name           *string `json:"name,omitempty"`
	Icon           *string `json:"icon,omitempty"`
	RequiresPlayer *bool   `json:"requires_player,omitempty"`
	CounterAction  *string `json:"counter_action,omitempty"`
	ReverseAction  *bool   `json:"reverse_action,omitempty"`
}

// Catalog is the ordered set of action types. It is not safe for concurrent use; the
// Session serialises access.
type Catalog struct {
	types []models.ActionType
}

func NewCatalog(types []models.ActionType) *Catalog {
	c := &Catalog{}
	c.Restore(types)
	return c
}

func (c *Catalog) List() []models.ActionType {
	return c.Snapshot()
}

func (c *Catalog) Get(id string) (models.ActionType, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.types[i].Clone(), true
	}
	return models.ActionType{}, false
}

// FindByName returns the first type with the given display name.
func (c *Catalog) FindByName(name string) (models.ActionType, bool) {
	for _, at := range c.types {
		if at.Name == name {
			return at.Clone(), true
		}
	}
	return models.ActionType{}, false
}

// Resolve looks an action type up by id first, then by display name.
func (c *Catalog) Resolve(idOrName string) (models.ActionType, bool) {
	if at, ok := c.Get(idOrName); ok {
		return at, true
	}
	return c.FindByName(idOrName)
}

func (c *Catalog) Add(input CreateActionTypeInput) (models.ActionType, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.ActionType{}, ErrActionTypeNameRequired
	}

	at := models.ActionType{
		ID:             input.ID,
		Name:           name,
		Icon:           input.Icon,
		RequiresPlayer: input.RequiresPlayer,
		ReverseAction:  input.ReverseAction,
	}
	if at.ID == "" {
		at.ID = uuid.New().String()
	} else if c.indexOf(at.ID) >= 0 {
		return models.ActionType{}, ErrActionTypeIDTaken
	}

	counter, err := c.checkCounter(at.ID, input.CounterAction)
	if err != nil {
		return models.ActionType{}, err
	}
	at.CounterAction = counter

	c.types = append(c.types, at)
	return at.Clone(), nil
}

func (c *Catalog) Update(id string, input UpdateActionTypeInput) (models.ActionType, error) {
	i := c.indexOf(id)
	if i < 0 {
		return models.ActionType{}, ErrActionTypeNotFound
	}
	at := c.types[i].Clone()

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return models.ActionType{}, ErrActionTypeNameRequired
		}
		at.Name = name
	}
	if input.Icon != nil {
		at.Icon = *input.Icon
	}
	if input.RequiresPlayer != nil {
		at.RequiresPlayer = *input.RequiresPlayer
	}
	if input.ReverseAction != nil {
		at.ReverseAction = *input.ReverseAction
	}
	if input.CounterAction != nil {
		counter, err := c.checkCounter(id, input.CounterAction)
		if err != nil {
			return models.ActionType{}, err
		}
		at.CounterAction = counter
	}

	c.types[i] = at
	return at.Clone(), nil
}

// Remove deletes the type. Counter-action links of other types that pointed to it are left
// dangling; recording simply skips them.
func (c *Catalog) Remove(id string) error {
	i := c.indexOf(id)
	if i < 0 {
		return ErrActionTypeNotFound
	}
	c.types = append(c.types[:i], c.types[i+1:]...)
	return nil
}

func (c *Catalog) Snapshot() []models.ActionType {
	out := make([]models.ActionType, len(c.types))
	for i, at := range c.types {
		out[i] = at.Clone()
	}
	return out
}

func (c *Catalog) Restore(types []models.ActionType) {
	c.types = make([]models.ActionType, len(types))
	for i, at := range types {
		c.types[i] = at.Clone()
	}
}

func (c *Catalog) indexOf(id string) int {
	for i := range c.types {
		if c.types[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Catalog) checkCounter(selfID string, counter *string) (*string, error) {
	if counter == nil || *counter == "" {
		return nil, nil
	}
	if *counter == selfID {
		return nil, ErrCounterActionSelfReference
	}
	if c.indexOf(*counter) < 0 {
		return nil, ErrCounterActionNotFound
	}
	v := *counter
	return &v, nil
}
