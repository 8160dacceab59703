package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rendypratama/invoicehub-backend/pkg/db/models"
	pkgerrors "github.com/rendypratama/invoicehub-backend/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

type fakeBlobStore struct {
	saved   []string
	deleted []string
	saveErr error
}

func (f *fakeBlobStore) Save(_ context.Context, originalName string, _ io.Reader) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	ref := "/uploads/" + originalName
	f.saved = append(f.saved, ref)
	return ref, nil
}

func (f *fakeBlobStore) Delete(_ context.Context, ref string) error {
	f.deleted = append(f.deleted, ref)
	return nil
}

func newTestService(t *testing.T) (Service, *Repository, *fakeBlobStore) {
	t.Helper()
	repo := NewRepository(newTestDB(t))
	blobs := &fakeBlobStore{}
	svc, err := NewService(repo, blobs)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc, repo, blobs
}

func TestCreateProductRoundTrip(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, CreateProductInput{
		Name:       "Widget",
		Stock:      10,
		PriceCents: 250,
	})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	if created.ProductName != "Widget" {
		t.Fatalf("expected name Widget, got %q", created.ProductName)
	}
	if created.Price != 2.5 {
		t.Fatalf("expected price 2.5, got %v", created.Price)
	}
	if created.Image != nil {
		t.Fatalf("expected no image, got %v", *created.Image)
	}

	got, err := svc.GetProduct(ctx, created.ProductID)
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	if got.Stock != 10 || got.Price != 2.5 {
		t.Fatalf("unexpected product read back: %+v", got)
	}
}

func TestCreateProductStoresImage(t *testing.T) {
	svc, _, blobs := newTestService(t)

	created, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:       "Gadget",
		Stock:      3,
		PriceCents: 999,
		Image:      &ImageUpload{FileName: "gadget.png", Content: strings.NewReader("png-bytes")},
	})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	if created.Image == nil || *created.Image != "/uploads/gadget.png" {
		t.Fatalf("unexpected image ref: %v", created.Image)
	}
	if len(blobs.deleted) != 0 {
		t.Fatalf("expected no deletes, got %v", blobs.deleted)
	}
}

func TestCreateProductDeletesImageOnValidationFailure(t *testing.T) {
	svc, _, blobs := newTestService(t)

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:       "   ",
		Stock:      1,
		PriceCents: 100,
		Image:      &ImageUpload{FileName: "orphan.png", Content: strings.NewReader("x")},
	})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(blobs.deleted) != 1 || blobs.deleted[0] != "/uploads/orphan.png" {
		t.Fatalf("expected stored image to be deleted, got %v", blobs.deleted)
	}
}

func TestCreateProductDeletesImageOnPersistenceFailure(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	blobs := &fakeBlobStore{}
	svc, err := NewService(repo, blobs)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	if err := db.Migrator().DropTable(&models.Product{}); err != nil {
		t.Fatalf("failed to drop table: %v", err)
	}

	_, err = svc.CreateProduct(context.Background(), CreateProductInput{
		Name:       "Doomed",
		Stock:      1,
		PriceCents: 100,
		Image:      &ImageUpload{FileName: "doomed.png", Content: strings.NewReader("x")},
	})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
	if len(blobs.deleted) != 1 {
		t.Fatalf("expected stored image to be deleted, got %v", blobs.deleted)
	}
}

func TestCreateProductUploadFailure(t *testing.T) {
	svc, repo, blobs := newTestService(t)
	blobs.saveErr = errors.New("disk full")

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:       "NoDisk",
		Stock:      1,
		PriceCents: 100,
		Image:      &ImageUpload{FileName: "nodisk.png", Content: strings.NewReader("x")},
	})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeUpload {
		t.Fatalf("expected upload error, got %v", err)
	}

	rows, err := repo.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no products, got %d", len(rows))
	}
}

func TestGetProductNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.GetProduct(context.Background(), uuid.New())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
	if !strings.Contains(appErr.Message(), "not found") {
		t.Fatalf("unexpected message: %q", appErr.Message())
	}
}

func TestSearchProductsPrefix(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"Widget", "Wrench", "Wire"} {
		if _, err := svc.CreateProduct(ctx, CreateProductInput{Name: name, Stock: 1, PriceCents: 100}); err != nil {
			t.Fatalf("seed product %s failed: %v", name, err)
		}
	}

	results, err := svc.SearchProducts(ctx, "wi")
	if err != nil {
		t.Fatalf("SearchProducts failed: %v", err)
	}
	names := make([]string, 0, len(results))
	for _, p := range results {
		names = append(names, p.ProductName)
	}
	if len(names) != 2 || names[0] != "Widget" || names[1] != "Wire" {
		t.Fatalf("expected [Widget Wire], got %v", names)
	}

	all, err := svc.SearchProducts(ctx, "")
	if err != nil {
		t.Fatalf("SearchProducts with empty prefix failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 products for empty prefix, got %d", len(all))
	}

	none, err := svc.SearchProducts(ctx, "zz")
	if err != nil {
		t.Fatalf("SearchProducts failed: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no matches, got %d", len(none))
	}
}
