package worker

// notificacao_worker.go
// Processes checkout notification jobs from QueueNotificacao: when a buyer
// sends an order, the operator receives the rendered order text by email
// with the quote PDF attached. Failures land in the DLQ.

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"catalogo/internal/infra"
	"catalogo/internal/repository"
	"catalogo/internal/whatsapp"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type NotificacaoWorker struct {
	pedidoRepo   repository.PedidoRepository
	catalogoRepo repository.CatalogoRepository
	mailer       *infra.Mailer
	notifyEmail  string
	pdfPath      string
	domain       string
}

func NewNotificacaoWorker(pedidoRepo repository.PedidoRepository, catalogoRepo repository.CatalogoRepository, mailer *infra.Mailer, notifyEmail, pdfPath, domain string) *NotificacaoWorker {
	return &NotificacaoWorker{
		pedidoRepo:   pedidoRepo,
		catalogoRepo: catalogoRepo,
		mailer:       mailer,
		notifyEmail:  notifyEmail,
		pdfPath:      pdfPath,
		domain:       domain,
	}
}

// Process renders and delivers one checkout notification.
func (w *NotificacaoWorker) Process(ctx context.Context, rdb *redis.Client, queue string, raw json.RawMessage) {
	var payload NotificacaoPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("notificacao_worker: payload invalido")
		SendToDLQ(ctx, rdb, queue, "notificacao", raw, "payload: "+err.Error(), 1)
		return
	}
	if w.notifyEmail == "" {
		log.Debug().Msg("notificacao_worker: NOTIFY_EMAIL vazio — ignorando")
		return
	}

	id, err := uuid.Parse(payload.PedidoID)
	if err != nil {
		SendToDLQ(ctx, rdb, queue, "notificacao", raw, "pedido_id: "+err.Error(), 1)
		return
	}

	pedido, itens, err := w.pedidoRepo.FindWithItens(ctx, id)
	if err != nil {
		SendToDLQ(ctx, rdb, queue, "notificacao", raw, "pedido: "+err.Error(), 1)
		return
	}
	catalogo, err := w.catalogoRepo.FindByID(ctx, pedido.CatalogoID)
	if err != nil {
		SendToDLQ(ctx, rdb, queue, "notificacao", raw, "catalogo: "+err.Error(), 1)
		return
	}

	link := fmt.Sprintf("%s/p/%s", strings.TrimSuffix(w.domain, "/"), pedido.ID)
	texto := whatsapp.MontarTexto(catalogo, itens, link)

	// Quote PDF is nice-to-have: a render failure still sends the text.
	pdfFile, err := infra.GerarPedidoPDF(pedido, itens, catalogo, w.pdfPath)
	if err != nil {
		log.Warn().Err(err).Str("pedido_id", payload.PedidoID).Msg("notificacao_worker: falha ao gerar PDF")
		pdfFile = ""
	}

	subject := fmt.Sprintf("Novo pedido %s — %s", shortID(pedido.ID), catalogo.Nome)
	if err := w.mailer.SendNotificacao(w.notifyEmail, subject, texto, pdfFile); err != nil {
		log.Error().Err(err).Str("pedido_id", payload.PedidoID).Msg("notificacao_worker: falha ao enviar email")
		SendToDLQ(ctx, rdb, queue, "notificacao", raw, "smtp: "+err.Error(), 1)
		return
	}
	log.Info().Str("pedido_id", payload.PedidoID).Str("to", w.notifyEmail).Msg("notificacao de pedido enviada")
}

func shortID(id uuid.UUID) string {
	s := id.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
