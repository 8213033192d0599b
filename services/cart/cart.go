package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"servify/models"
	"servify/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// CartTTL is how long an untouched cart survives. Guests lose the cart
// after this; every write refreshes it.
const CartTTL = 72 * time.Hour

// CartService manages the per-session cart, authenticated or guest.
type CartService interface {
	Get(ctx context.Context, sessionID string) (*models.Cart, error)
	AddItem(ctx context.Context, sessionID string, item models.CartItem) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, sessionID, itemID string) (*models.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

// RedisCartService stores each cart as one JSON document.
type RedisCartService struct {
	Client *redis.Client
}

func cartKey(sessionID string) string {
	return utils.CartPrefix + sessionID
}

func (s *RedisCartService) Get(ctx context.Context, sessionID string) (*models.Cart, error) {
	data, err := s.Client.Get(ctx, cartKey(sessionID)).Result()
	if err == redis.Nil {
		return &models.Cart{SessionID: sessionID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	var c models.Cart
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return nil, fmt.Errorf("failed to parse cart: %w", err)
	}
	return &c, nil
}

// AddItem appends a line, or bumps the quantity when the offering is
// already in the cart.
func (s *RedisCartService) AddItem(ctx context.Context, sessionID string, item models.CartItem) (*models.Cart, error) {
	if item.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be a positive integer")
	}
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range c.Items {
		if c.Items[i].ServiceID == item.ServiceID {
			c.Items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		c.Items = append(c.Items, item)
	}

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *RedisCartService) UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be a positive integer")
	}
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items[i].Quantity = quantity
			if err := s.save(ctx, c); err != nil {
				return nil, err
			}
			return c, nil
		}
	}
	return nil, fmt.Errorf("cart item %s not found", itemID)
}

func (s *RedisCartService) RemoveItem(ctx context.Context, sessionID, itemID string) (*models.Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	kept := c.Items[:0]
	found := false
	for _, item := range c.Items {
		if item.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return nil, fmt.Errorf("cart item %s not found", itemID)
	}
	c.Items = kept
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *RedisCartService) Clear(ctx context.Context, sessionID string) error {
	if err := s.Client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (s *RedisCartService) save(ctx context.Context, c *models.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	if err := s.Client.Set(ctx, cartKey(c.SessionID), data, CartTTL).Err(); err != nil {
		return fmt.Errorf("failed to store cart: %w", err)
	}
	return nil
}
