// Package liquidity manages pools of ordered token pairs and the positions opened into them.
package liquidity

import (
	"context"
	"errors"
	"strconv"
	"time"

	"launchpad-backend/internal/application/ledger"
	"launchpad-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrSameToken        = errors.New("Pool tokens must differ")
	ErrInvalidLiquidity = errors.New("Liquidity amounts must be positive")
	ErrPositionNotFound = errors.New("Position not found")
)

// Mover moves tokens between accounts within the caller's transaction.
type Mover interface {
	Transfer(tx *gorm.DB, token, from, to string, amount decimal.Decimal) error
}

type Service struct {
	DB    *gorm.DB
	Funds Mover
}

// PoolAccount is the custody account that holds a pool's reserves.
func PoolAccount(id uint) string {
	return ledger.PoolPrefix + strconv.FormatUint(uint64(id), 10)
}

// OpenPosition pulls amountA of tokenA and amountB of tokenB from payer into the pair's pool
// (creating the pool on first use) and records a position owned by owner.
func (s *Service) OpenPosition(tx *gorm.DB, tokenA, tokenB string, amountA, amountB decimal.Decimal, payer, owner string, at time.Time) (string, error) {
	if tokenA == tokenB {
		return "", ErrSameToken
	}
	if !amountA.IsPositive() || !amountB.IsPositive() {
		return "", ErrInvalidLiquidity
	}
	// pools are keyed by the ordered pair
	if tokenB < tokenA {
		tokenA, tokenB = tokenB, tokenA
		amountA, amountB = amountB, amountA
	}

	pool, err := s.poolFor(tx, tokenA, tokenB)
	if err != nil {
		return "", err
	}
	if err := s.Funds.Transfer(tx, tokenA, payer, pool.Account, amountA); err != nil {
		return "", err
	}
	if err := s.Funds.Transfer(tx, tokenB, payer, pool.Account, amountB); err != nil {
		return "", err
	}
	if err := tx.Model(&domain.Pool{}).Where("id = ?", pool.ID).Updates(map[string]interface{}{
		"reserve_a": pool.ReserveA.Add(amountA),
		"reserve_b": pool.ReserveB.Add(amountB),
	}).Error; err != nil {
		return "", err
	}

	pos := domain.Position{
		ID:       uuid.New().String(),
		PoolID:   pool.ID,
		Owner:    owner,
		TokenA:   tokenA,
		TokenB:   tokenB,
		AmountA:  amountA,
		AmountB:  amountB,
		OpenedAt: at,
	}
	if err := tx.Create(&pos).Error; err != nil {
		return "", err
	}
	return pos.ID, nil
}

func (s *Service) poolFor(tx *gorm.DB, tokenA, tokenB string) (*domain.Pool, error) {
	var p domain.Pool
	err := tx.Where("token_a = ? AND token_b = ?", tokenA, tokenB).First(&p).Error
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	p = domain.Pool{TokenA: tokenA, TokenB: tokenB, Account: "pending", ReserveA: decimal.Zero, ReserveB: decimal.Zero}
	if err := tx.Create(&p).Error; err != nil {
		return nil, err
	}
	p.Account = PoolAccount(p.ID)
	if err := tx.Model(&domain.Pool{}).Where("id = ?", p.ID).Update("account", p.Account).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) GetPosition(ctx context.Context, id string) (*domain.Position, error) {
	var p domain.Position
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPositionNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListPositions returns the positions held by owner, oldest first.
func (s *Service) ListPositions(ctx context.Context, owner string) ([]domain.Position, error) {
	var out []domain.Position
	err := s.DB.WithContext(ctx).Where("owner = ?", owner).Order("opened_at ASC, id ASC").Find(&out).Error
	return out, err
}

func (s *Service) GetPool(ctx context.Context, tokenA, tokenB string) (*domain.Pool, error) {
	if tokenB < tokenA {
		tokenA, tokenB = tokenB, tokenA
	}
	var p domain.Pool
	if err := s.DB.WithContext(ctx).Where("token_a = ? AND token_b = ?", tokenA, tokenB).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
