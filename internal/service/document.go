package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/fuelsupply-server/internal/logger"
	"github.com/dtroode/fuelsupply-server/internal/model"
)

const pdfContentType = "application/pdf"

var errBadDocumentKey = fmt.Errorf("%w: invalid document key", model.ErrValidation)

// Document renders invoices and contracts, archives them and emails them.
type Document struct {
	renderer model.Renderer
	mailer   model.Mailer
	storage  model.Storage
	logger   *logger.Logger
	suffix   func() string
}

// NewDocument creates the document pipeline. storage may be nil to disable archiving.
func NewDocument(renderer model.Renderer, mailer model.Mailer, storage model.Storage, logger *logger.Logger) *Document {
	return &Document{
		renderer: renderer,
		mailer:   mailer,
		storage:  storage,
		logger:   logger,
		suffix:   func() string { return strings.ReplaceAll(uuid.NewString(), "-", "")[:8] },
	}
}

// RenderInvoice renders payload. The bytes depend only on the payload; the
// filename is fresh on every call.
func (s *Document) RenderInvoice(payload model.InvoicePayload) (model.Document, error) {
	if err := payload.Validate(); err != nil {
		return model.Document{}, err
	}

	content, err := s.renderer.RenderInvoice(payload)
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to render invoice: %w", err)
	}

	issued := payload.IssuedAt
	if issued.IsZero() {
		issued = time.Now()
	}

	return model.Document{
		Content:     content,
		Filename:    fmt.Sprintf("invoice-%s-%s.pdf", issued.UTC().Format("20060102"), s.suffix()),
		ContentType: pdfContentType,
		Total:       payload.Total(),
		Currency:    payload.Currency,
	}, nil
}

// RenderContract renders a contract summary, with the signature block when acceptance is set.
func (s *Document) RenderContract(contract model.Contract, acceptance *model.Acceptance) (model.Document, error) {
	content, err := s.renderer.RenderContract(contract, acceptance)
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to render contract: %w", err)
	}

	return model.Document{
		Content:     content,
		Filename:    fmt.Sprintf("contract-%s-%s.pdf", contract.ID.String()[:8], s.suffix()),
		ContentType: pdfContentType,
	}, nil
}

// Dispatch makes exactly one delivery attempt and never fails the caller.
func (s *Document) Dispatch(ctx context.Context, msg model.Message) (result model.DeliveryResult) {
	ctx, span := tracer.Start(ctx, "Document.Service.Dispatch")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Document service: mailer panicked", "panic", fmt.Sprint(r))
			result = model.DeliveryResult{Reason: "mail provider failure"}
		}
	}()

	if s.mailer == nil {
		return model.DeliveryResult{Reason: "mail provider not configured"}
	}
	if len(msg.To) == 0 {
		return model.DeliveryResult{Reason: "no recipient"}
	}

	attachments, err := normalizeAttachments(msg.Attachments)
	if err != nil {
		s.logger.Warn("Document service: invalid attachment", "error", err.Error())
		return model.DeliveryResult{Reason: "invalid attachment encoding"}
	}
	msg.Attachments = attachments

	id, err := s.mailer.Send(ctx, msg)
	if err != nil {
		span.RecordError(err)
		s.logger.Error("Document service: failed to send email",
			"to", strings.Join(msg.To, ","),
			"subject", msg.Subject,
			"error", err.Error())
		return model.DeliveryResult{Reason: "mail provider rejected the message"}
	}

	s.logger.Info("Document service: email sent",
		"to", strings.Join(msg.To, ","),
		"message_id", id)

	return model.DeliveryResult{Delivered: true, MessageID: id}
}

func normalizeAttachments(in []model.Attachment) ([]model.Attachment, error) {
	out := make([]model.Attachment, 0, len(in))
	for _, a := range in {
		if len(a.Content) == 0 && a.ContentBase64 != "" {
			raw, err := base64.StdEncoding.DecodeString(a.ContentBase64)
			if err != nil {
				return nil, fmt.Errorf("attachment %q: %w", a.Filename, err)
			}
			a.Content = raw
		}
		a.ContentBase64 = ""
		if a.ContentType == "" {
			a.ContentType = pdfContentType
		}
		out = append(out, a)
	}
	return out, nil
}

// SendInvoice renders, archives and emails an invoice. Only invalid input
// fails; delivery problems are reported in the result.
func (s *Document) SendInvoice(ctx context.Context, req model.InvoiceRequest) (model.InvoiceResult, error) {
	ctx, span := tracer.Start(ctx, "Document.Service.SendInvoice")
	defer span.End()

	to := model.NormalizeEmail(req.To)
	if to == "" {
		to = model.NormalizeEmail(req.Payload.CustomerEmail)
	}
	if !model.ValidEmail(to) {
		return model.InvoiceResult{}, fail(span, fmt.Errorf("%w: invalid recipient", model.ErrValidation))
	}

	doc, err := s.RenderInvoice(req.Payload)
	if err != nil {
		return model.InvoiceResult{}, fail(span, err)
	}

	result := model.InvoiceResult{
		Filename:   doc.Filename,
		Total:      model.FormatMoney(doc.Total, doc.Currency),
		ArchiveKey: s.archive(ctx, path.Join("invoices", doc.Filename), doc),
	}

	subject := req.Subject
	if subject == "" {
		subject = "Invoice " + req.Payload.Number
	}
	html, err := renderMail("invoice", map[string]string{
		"Name":   req.Payload.CustomerName,
		"Number": req.Payload.Number,
		"Total":  result.Total,
	})
	if err != nil {
		return model.InvoiceResult{}, fail(span, fmt.Errorf("failed to render invoice email: %w", err))
	}

	delivery := s.Dispatch(ctx, model.Message{
		To:      []string{to},
		Subject: subject,
		HTML:    html,
		Attachments: []model.Attachment{{
			Filename:    doc.Filename,
			ContentType: doc.ContentType,
			Content:     doc.Content,
		}},
	})
	result.Emailed = delivery.Delivered
	result.Reason = delivery.Reason

	return result, nil
}

// SendContract renders the contract and emails it to "to". It reports whether
// the email was accepted by the provider and never fails.
func (s *Document) SendContract(ctx context.Context, contract model.Contract, acceptance *model.Acceptance, to string) bool {
	ctx, span := tracer.Start(ctx, "Document.Service.SendContract")
	defer span.End()

	doc, err := s.RenderContract(contract, acceptance)
	if err != nil {
		span.RecordError(err)
		s.logger.Error("Document service: failed to render contract",
			"contract_id", contract.ID,
			"error", err.Error())
		return false
	}
	s.archive(ctx, path.Join("contracts", contract.ID.String(), doc.Filename), doc)

	name, tmpl, subject := contract.CustomerName, "contract_approved", "Your fuel supply contract is active"
	if acceptance != nil {
		name, tmpl, subject = acceptance.AcceptedName, "contract_signed", "Your signed fuel supply contract"
	}
	html, err := renderMail(tmpl, map[string]string{"Name": name, "Type": string(contract.Type)})
	if err != nil {
		s.logger.Error("Document service: failed to render contract email", "error", err.Error())
		return false
	}

	return s.Dispatch(ctx, model.Message{
		To:      []string{to},
		Subject: subject,
		HTML:    html,
		Attachments: []model.Attachment{{
			Filename:    doc.Filename,
			ContentType: doc.ContentType,
			Content:     doc.Content,
		}},
	}).Delivered
}

// archive stores doc under key and returns the key, or "" when not stored.
func (s *Document) archive(ctx context.Context, key string, doc model.Document) string {
	if s.storage == nil {
		return ""
	}
	err := s.storage.Upload(ctx, key, bytes.NewReader(doc.Content), int64(len(doc.Content)), doc.ContentType)
	if err != nil {
		s.logger.Warn("Document service: failed to archive document",
			"key", key,
			"error", err.Error())
		return ""
	}
	return key
}

// Download opens an archived document.
func (s *Document) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	ctx, span := tracer.Start(ctx, "Document.Service.Download")
	defer span.End()

	clean := path.Clean(key)
	if clean != key || strings.Contains(key, "..") ||
		!(strings.HasPrefix(key, "invoices/") || strings.HasPrefix(key, "contracts/")) {
		return nil, fail(span, errBadDocumentKey)
	}
	if s.storage == nil {
		return nil, fail(span, model.ErrNotFound)
	}

	// the archive maps a missing key to ErrNotFound
	rc, err := s.storage.Download(ctx, key)
	if err != nil {
		return nil, fail(span, storeError("download document", err))
	}
	return rc, nil
}

