package repository

import (
	"context"

	"catalogo/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProdutoRepository is the data access contract for the catalog product index.
// Products only ever change through ReplaceAll/UpsertAll; reads are by page
// or by search term.
type ProdutoRepository interface {
	// ReplaceAll deletes every product of the catalog and inserts rows, all
	// inside one transaction. A failing row rolls back the whole batch.
	ReplaceAll(ctx context.Context, catalogoID uint, rows []model.Produto) error
	// UpsertAll inserts or updates rows by (catalogo_id, ref) inside one
	// transaction, leaving products absent from rows untouched.
	UpsertAll(ctx context.Context, catalogoID uint, rows []model.Produto) error
	ListByPage(ctx context.Context, catalogoID uint, pagina int) ([]model.Produto, error)
	// Search matches term case-insensitively against ref OR nome. Rows whose
	// ref matches rank before rows where only nome matches; within a tier the
	// order is pagina, nome, ref.
	Search(ctx context.Context, catalogoID uint, term string, limit int) ([]model.Produto, error)
	CountByCatalogo(ctx context.Context, catalogoID uint) (int64, error)
}

type produtoRepo struct{ db *gorm.DB }

func NewProdutoRepository(db *gorm.DB) ProdutoRepository { return &produtoRepo{db: db} }

func (r *produtoRepo) ReplaceAll(ctx context.Context, catalogoID uint, rows []model.Produto) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("catalogo_id = ?", catalogoID).Delete(&model.Produto{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

func (r *produtoRepo) UpsertAll(ctx context.Context, catalogoID uint, rows []model.Produto) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "catalogo_id"}, {Name: "ref"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"pagina", "nome", "qtd_multiplo", "preco", "updated_at",
				}),
			}).Create(&rows[i]).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *produtoRepo) ListByPage(ctx context.Context, catalogoID uint, pagina int) ([]model.Produto, error) {
	var produtos []model.Produto
	err := r.db.WithContext(ctx).
		Where("catalogo_id = ? AND pagina = ?", catalogoID, pagina).
		Order("nome ASC, ref ASC").
		Find(&produtos).Error
	return produtos, err
}

func (r *produtoRepo) Search(ctx context.Context, catalogoID uint, term string, limit int) ([]model.Produto, error) {
	var produtos []model.Produto
	pattern := "%" + term + "%"
	// LOWER(...) LIKE keeps the query portable between postgres and the
	// sqlite test driver (no ILIKE there).
	err := r.db.WithContext(ctx).
		Where("catalogo_id = ? AND (LOWER(ref) LIKE LOWER(?) OR LOWER(nome) LIKE LOWER(?))",
			catalogoID, pattern, pattern).
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN LOWER(ref) LIKE LOWER(?) THEN 0 ELSE 1 END, pagina ASC, nome ASC, ref ASC",
			Vars:               []interface{}{pattern},
			WithoutParentheses: true,
		}}).
		Limit(limit).
		Find(&produtos).Error
	return produtos, err
}

func (r *produtoRepo) CountByCatalogo(ctx context.Context, catalogoID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Produto{}).
		Where("catalogo_id = ?", catalogoID).Count(&count).Error
	return count, err
}
