package repository

import (
	"context"
	"errors"
	"time"

	"catalogo/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PedidoRepository is the data access contract for orders and their lines.
type PedidoRepository interface {
	Create(ctx context.Context, p *model.Pedido) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	// FindWithItens loads the order plus its lines ordered by nome, ref.
	FindWithItens(ctx context.Context, id uuid.UUID) (*model.Pedido, []model.PedidoItem, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Pedido, error)
	// ReplaceItens deletes every line of the order and inserts itens as the
	// new authoritative set, touching the order's updated_at — one tx.
	ReplaceItens(ctx context.Context, id uuid.UUID, itens []model.PedidoItem) error
	// UpsertItemDelta adds delta to the line's qty (clamped at 0), creating
	// the line when absent. A line landing on qty 0 is removed; the returned
	// item still reports the final (zero) quantity.
	UpsertItemDelta(ctx context.Context, id uuid.UUID, item model.PedidoItem) (*model.PedidoItem, error)
	// DeleteItem removes one line by ref. Idempotent.
	DeleteItem(ctx context.Context, id uuid.UUID, ref string) error
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) Create(ctx context.Context, p *model.Pedido) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pedidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *pedidoRepo) FindWithItens(ctx context.Context, id uuid.UUID) (*model.Pedido, []model.PedidoItem, error) {
	var p model.Pedido
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, nil, err
	}
	var itens []model.PedidoItem
	err := r.db.WithContext(ctx).
		Where("pedido_id = ?", id).
		Order("nome ASC, ref ASC").
		Find(&itens).Error
	return &p, itens, err
}

func (r *pedidoRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Pedido, error) {
	res := r.db.WithContext(ctx).Model(&model.Pedido{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *pedidoRepo) ReplaceItens(ctx context.Context, id uuid.UUID, itens []model.PedidoItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pedido_id = ?", id).Delete(&model.PedidoItem{}).Error; err != nil {
			return err
		}
		if len(itens) > 0 {
			if err := tx.Create(&itens).Error; err != nil {
				return err
			}
		}
		return tx.Model(&model.Pedido{}).Where("id = ?", id).
			Update("updated_at", time.Now()).Error
	})
}

func (r *pedidoRepo) UpsertItemDelta(ctx context.Context, id uuid.UUID, item model.PedidoItem) (*model.PedidoItem, error) {
	item.PedidoID = id
	var result model.PedidoItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.PedidoItem
		err := tx.Where("pedido_id = ? AND ref = ?", id, item.Ref).First(&existing).Error
		switch {
		case err == nil:
			qtd := existing.Qtd + item.Qtd
			if qtd < 0 {
				qtd = 0
			}
			existing.Qtd = qtd
			existing.Nome = item.Nome
			existing.Pagina = item.Pagina
			existing.QtdMultiplo = item.QtdMultiplo
			existing.Preco = item.Preco
			if qtd == 0 {
				if err := tx.Delete(&model.PedidoItem{}, existing.ID).Error; err != nil {
					return err
				}
			} else if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			result = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			if item.Qtd < 0 {
				item.Qtd = 0
			}
			if item.Qtd > 0 {
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
			}
			result = item
		default:
			return err
		}
		return tx.Model(&model.Pedido{}).Where("id = ?", id).
			Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *pedidoRepo) DeleteItem(ctx context.Context, id uuid.UUID, ref string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pedido_id = ? AND ref = ?", id, ref).
			Delete(&model.PedidoItem{}).Error; err != nil {
			return err
		}
		return tx.Model(&model.Pedido{}).Where("id = ?", id).
			Update("updated_at", time.Now()).Error
	})
}
