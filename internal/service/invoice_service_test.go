package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/maekabu-office/internal/constants"
	"github.com/maekabu-office/internal/idgen"
	"github.com/maekabu-office/internal/models"
	"github.com/maekabu-office/internal/repository"
	"github.com/maekabu-office/internal/storage"

	"gorm.io/gorm"
)

const testCompanyID = "c7b60aee-a256-4880-b308-fa02e0394712"

func newInvoiceServiceForTest(t *testing.T, db *gorm.DB) *InvoiceService {
	t.Helper()
	ids, err := idgen.NewGenerator(1)
	if err != nil {
		t.Fatalf("idgen failed: %v", err)
	}
	return NewInvoiceService(repository.NewInvoiceRepository(db), ids, nil, "INV", testCompanyID)
}

func invoiceItems(items ...InvoiceItemInput) *[]InvoiceItemInput {
	return &items
}

func TestInvoiceCreateWritesItemsAndTotals(t *testing.T) {
	db := setupServiceTest(t)
	svc := newInvoiceServiceForTest(t, db)

	invoice, err := svc.Create(InvoiceInput{
		Title:       "5月分",
		InvoiceDate: "2024-05-01",
		DueDate:     "2024-05-31",
		Subtotal:    yen(999999),
		Items: invoiceItems(
			InvoiceItemInput{Description: "撮影", Quantity: models.NewQuantity(2), UnitPrice: yen(500)},
			InvoiceItemInput{Description: "編集", Quantity: models.NewQuantity(1), UnitPrice: yen(999)},
		),
	}, "emp-1")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.HasPrefix(invoice.InvoiceNumber, "INV-") {
		t.Fatalf("invoice number should be generated, got %q", invoice.InvoiceNumber)
	}
	if invoice.CompanyID != testCompanyID {
		t.Fatalf("default company not applied")
	}
	if !invoice.Subtotal.Equal(yen(1999).Decimal) || !invoice.TaxAmount.Equal(yen(199).Decimal) || !invoice.TotalAmount.Equal(yen(2198).Decimal) {
		t.Fatalf("client subtotal must be ignored, got %s/%s/%s", invoice.Subtotal, invoice.TaxAmount, invoice.TotalAmount)
	}

	stored, err := svc.Get(invoice.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(stored.Items) != 2 || stored.Items[0].ItemOrder != 1 || stored.Items[1].Description != "編集" {
		t.Fatalf("items not stored in order: %+v", stored.Items)
	}
}

func TestInvoiceCreateWithoutItemsUsesSubtotal(t *testing.T) {
	db := setupServiceTest(t)
	svc := newInvoiceServiceForTest(t, db)

	invoice, err := svc.Create(InvoiceInput{InvoiceDate: "2024-05-01", DueDate: "2024-05-31", Subtotal: yen(10001)}, "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !invoice.TaxAmount.Equal(yen(1000).Decimal) || !invoice.TotalAmount.Equal(yen(11001).Decimal) {
		t.Fatalf("tax should floor 10%%, got %s/%s", invoice.TaxAmount, invoice.TotalAmount)
	}
}

func TestInvoiceCreateValidation(t *testing.T) {
	db := setupServiceTest(t)
	svc := newInvoiceServiceForTest(t, db)

	cases := []InvoiceInput{
		{DueDate: "2024-05-31"},
		{InvoiceDate: "2024-05-01", DueDate: "not-a-date"},
		{InvoiceDate: "2024-05-01", DueDate: "2024-05-31", Status: "unknown"},
		{InvoiceDate: "2024-05-01", DueDate: "2024-05-31", Items: invoiceItems(InvoiceItemInput{Quantity: models.NewQuantity(-1)})},
	}
	for i, input := range cases {
		if _, err := svc.Create(input, ""); !errors.Is(err, ErrInvoiceInvalid) {
			t.Fatalf("case %d: want ErrInvoiceInvalid got %v", i, err)
		}
	}
	var count int64
	db.Model(&models.Invoice{}).Count(&count)
	if count != 0 {
		t.Fatalf("invalid input must not write headers, found %d", count)
	}
}

func TestInvoiceUpdateReplacesItems(t *testing.T) {
	db := setupServiceTest(t)
	svc := newInvoiceServiceForTest(t, db)

	invoice, err := svc.Create(InvoiceInput{
		InvoiceDate: "2024-05-01",
		DueDate:     "2024-05-31",
		Items:       invoiceItems(InvoiceItemInput{Description: "a", Quantity: models.NewQuantity(1), UnitPrice: yen(100)}),
	}, "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// 明細を送らない更新は明細を保つ
	kept, err := svc.Update(invoice.ID, InvoiceInput{Title: "改題", InvoiceDate: "2024-05-01", DueDate: "2024-06-30"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(kept.Items) != 1 || !kept.Subtotal.Equal(yen(100).Decimal) {
		t.Fatalf("items should be kept, got %+v subtotal %s", kept.Items, kept.Subtotal)
	}

	updated, err := svc.Update(invoice.ID, InvoiceInput{
		InvoiceDate: "2024-05-01",
		DueDate:     "2024-06-30",
		Items: invoiceItems(
			InvoiceItemInput{Description: "b", Quantity: models.NewQuantity(3), UnitPrice: yen(1000)},
			InvoiceItemInput{Description: "c", Quantity: models.NewQuantity(1), UnitPrice: yen(5)},
		),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !updated.TotalAmount.Equal(yen(3305).Decimal) {
		t.Fatalf("want total 3305 got %s", updated.TotalAmount)
	}
	var count int64
	db.Model(&models.InvoiceItem{}).Where("invoice_id = ?", invoice.ID).Count(&count)
	if count != 2 {
		t.Fatalf("old items should be replaced, found %d", count)
	}

	if err := svc.Delete(invoice.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	db.Model(&models.InvoiceItem{}).Where("invoice_id = ?", invoice.ID).Count(&count)
	if count != 0 {
		t.Fatalf("items should be deleted with the header, found %d", count)
	}
	if _, err := svc.Get(invoice.ID); !errors.Is(err, ErrInvoiceNotFound) {
		t.Fatalf("want ErrInvoiceNotFound got %v", err)
	}
}

func TestInvoiceUpdateReturnsCurrentClient(t *testing.T) {
	db := setupServiceTest(t)
	svc := newInvoiceServiceForTest(t, db)
	before := &models.Client{CompanyID: testCompanyID, ClientName: "旧取引先", IsCustomer: true}
	after := &models.Client{CompanyID: testCompanyID, ClientName: "新取引先", IsCustomer: true}
	mustCreate(t, db, before)
	mustCreate(t, db, after)

	invoice, err := svc.Create(InvoiceInput{ClientID: &before.ID, InvoiceDate: "2024-05-01", DueDate: "2024-05-31"}, "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	updated, err := svc.Update(invoice.ID, InvoiceInput{ClientID: &after.ID, InvoiceDate: "2024-05-01", DueDate: "2024-05-31"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.ClientID == nil || *updated.ClientID != after.ID {
		t.Fatalf("client id not updated: %v", updated.ClientID)
	}
	if updated.Client == nil || updated.Client.ClientName != "新取引先" {
		t.Fatalf("returned client should be the new one, got %+v", updated.Client)
	}

	cleared, err := svc.Update(invoice.ID, InvoiceInput{InvoiceDate: "2024-05-01", DueDate: "2024-05-31"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if cleared.ClientID != nil || cleared.Client != nil {
		t.Fatalf("client should be cleared, got %v %+v", cleared.ClientID, cleared.Client)
	}
}

func TestInvoiceListResolvesClientName(t *testing.T) {
	db := setupServiceTest(t)
	svc := newInvoiceServiceForTest(t, db)
	client := &models.Client{CompanyID: testCompanyID, ClientName: "株式会社サンプル", IsCustomer: true}
	mustCreate(t, db, client)

	if _, err := svc.Create(InvoiceInput{ClientID: &client.ID, InvoiceDate: "2024-05-01", DueDate: "2024-05-31"}, ""); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(InvoiceInput{InvoiceDate: "2024-04-01", DueDate: "2024-04-30"}, ""); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	views, total, err := svc.List(repository.InvoiceListFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(views) != 2 {
		t.Fatalf("want 2 invoices got %d", total)
	}
	if views[0].ClientName != "株式会社サンプル" || views[1].ClientName != constants.UnknownName {
		t.Fatalf("unexpected client names %q %q", views[0].ClientName, views[1].ClientName)
	}
}

func TestInvoiceMarkOverdue(t *testing.T) {
	db := setupServiceTest(t)
	svc := newInvoiceServiceForTest(t, db)
	if _, err := svc.Create(InvoiceInput{InvoiceDate: "2020-01-01", DueDate: "2020-01-31"}, ""); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	affected, err := svc.MarkOverdue(context.Background())
	if err != nil {
		t.Fatalf("mark overdue failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("want 1 overdue got %d", affected)
	}
}

func TestInvoiceDocumentRenderAndArchive(t *testing.T) {
	db := setupServiceTest(t)
	svc := newInvoiceServiceForTest(t, db)
	company := &models.Company{ID: testCompanyID, CompanyName: "株式会社まえかぶ", BankName: "みずほ銀行", BankBranch: "渋谷支店", BankAccountType: "普通", BankAccountNumber: "1234567"}
	mustCreate(t, db, company)

	invoice, err := svc.Create(InvoiceInput{
		InvoiceNumber: "INV-TEST-1",
		Title:         "5月分",
		InvoiceDate:   "2024-05-01",
		DueDate:       "2024-05-31",
		Items:         invoiceItems(InvoiceItemInput{Description: "<撮影>", Quantity: models.NewQuantity(2), UnitPrice: yen(1500000)}),
	}, "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	store := storage.NewMemoryStore("https://storage.example.com")
	docs := NewInvoiceDocumentService(repository.NewInvoiceRepository(db), repository.NewCompanyRepository(db), store, "invoice-documents", testCompanyID)
	_, html, err := docs.Render(invoice.ID)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	page := string(html)
	for _, want := range []string{"INV-TEST-1", "2024年5月1日", "2024年5月31日", "¥3,000,000", "¥300,000", "¥3,300,000", "株式会社まえかぶ", "みずほ銀行", "&lt;撮影&gt;", "不明 御中"} {
		if !strings.Contains(page, want) {
			t.Fatalf("rendered html missing %q", want)
		}
	}

	url, err := docs.Archive(context.Background(), invoice.ID)
	if err != nil {
		t.Fatalf("archive failed: %v", err)
	}
	obj, ok := store.Get("invoice-documents", "invoices/INV-TEST-1.html")
	if !ok || !strings.HasPrefix(obj.ContentType, "text/html") {
		t.Fatalf("archived document not stored")
	}
	stored, _ := svc.Get(invoice.ID)
	if stored.DocumentURL != url {
		t.Fatalf("document_url not saved: %q vs %q", stored.DocumentURL, url)
	}
}

func TestRenderInvoiceHTMLFallbackRow(t *testing.T) {
	invoice := &models.Invoice{InvoiceNumber: "INV-2", Subtotal: yen(1000), TaxAmount: yen(100), TotalAmount: yen(1100)}
	html, err := RenderInvoiceHTML(invoice, nil)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	page := string(html)
	if !strings.Contains(page, defaultServiceDescription) || !strings.Contains(page, "会社情報が登録されていません") {
		t.Fatalf("fallback row or company placeholder missing")
	}
}

func TestFormatYen(t *testing.T) {
	cases := map[string]models.Money{
		"¥0":          yen(0),
		"¥999":        yen(999),
		"¥1,000":      yen(1000),
		"¥12,345,678": yen(12345678),
		"¥-1,500":     yen(-1500),
		"¥1,234.50":   models.NewMoneyFromDecimal(yen(1234).Add(models.NewRate("0.5").Decimal)),
	}
	for want, amount := range cases {
		if got := formatYen(amount); got != want {
			t.Fatalf("formatYen(%s) = %q want %q", amount, got, want)
		}
	}
}
