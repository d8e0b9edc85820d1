package minting

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TokenMinter deploys the proposal's token and mints its supply.
type TokenMinter interface {
	AddressOf(proposalID uint64, symbol string) string
	Deploy(tx *gorm.DB, address, name, symbol string, proposalID uint64) error
	Mint(tx *gorm.DB, token, to string, amount decimal.Decimal) error
}

// PositionManager opens the AMM liquidity position for a minted token.
type PositionManager interface {
	OpenPosition(tx *gorm.DB, tokenA, tokenB string, amountA, amountB decimal.Decimal, payer, owner string, at time.Time) (string, error)
}

// Payout is a plain transfer target such as the treasury or the vesting custody.
type Payout interface {
	Transfer(tx *gorm.DB, token, from, to string, amount decimal.Decimal) error
}

// SetTokenMinter wires the token collaborator. It can be set once.
func (s *Service) SetTokenMinter(m TokenMinter) error {
	if m == nil {
		return ErrInvalidCollaborator
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.minter != nil {
		return ErrAlreadyConfigured
	}
	s.minter = m
	return nil
}

// SetPositionManager wires the AMM collaborator. It can be set once.
func (s *Service) SetPositionManager(p PositionManager) error {
	if p == nil {
		return ErrInvalidCollaborator
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.positions != nil {
		return ErrAlreadyConfigured
	}
	s.positions = p
	return nil
}

// SetTreasury wires the payout collaborator and the treasury account. It can be set once.
func (s *Service) SetTreasury(p Payout, account string) error {
	if p == nil || account == "" {
		return ErrInvalidCollaborator
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.payout != nil {
		return ErrAlreadyConfigured
	}
	s.payout = p
	s.treasury = account
	return nil
}

type wiring struct {
	minter    TokenMinter
	positions PositionManager
	payout    Payout
	treasury  string
}

func (s *Service) wiring() (wiring, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.minter == nil || s.positions == nil || s.payout == nil {
		return wiring{}, ErrNotConfigured
	}
	return wiring{minter: s.minter, positions: s.positions, payout: s.payout, treasury: s.treasury}, nil
}
