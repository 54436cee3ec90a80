package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"jewelry-service/repository"
)

// fakeCatalog captures the write models each sheet submits and replies with
// canned bulk results.
type fakeCatalog struct {
	ops        map[string][]mongo.WriteModel
	results    map[string]*repository.BulkResult
	productIDs map[string]primitive.ObjectID
	metalRates map[string]float64
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		ops:        make(map[string][]mongo.WriteModel),
		results:    make(map[string]*repository.BulkResult),
		productIDs: make(map[string]primitive.ObjectID),
		metalRates: make(map[string]float64),
	}
}

func (f *fakeCatalog) record(coll string, ops []mongo.WriteModel) (*repository.BulkResult, error) {
	f.ops[coll] = ops
	if res, ok := f.results[coll]; ok {
		return res, nil
	}
	// Default: every submitted row inserts.
	return &repository.BulkResult{Upserted: int64(len(ops))}, nil
}

func (f *fakeCatalog) BulkUpsertMetals(ctx context.Context, ops []mongo.WriteModel) (*repository.BulkResult, error) {
	return f.record("metals", ops)
}

func (f *fakeCatalog) BulkUpsertProducts(ctx context.Context, ops []mongo.WriteModel) (*repository.BulkResult, error) {
	return f.record("products", ops)
}

func (f *fakeCatalog) BulkUpsertVariants(ctx context.Context, ops []mongo.WriteModel) (*repository.BulkResult, error) {
	return f.record("variants", ops)
}

func (f *fakeCatalog) BulkUpsertExpandedVariants(ctx context.Context, ops []mongo.WriteModel) (*repository.BulkResult, error) {
	return f.record("expanded_variants", ops)
}

func (f *fakeCatalog) BulkUpsertDYOExpandedVariants(ctx context.Context, ops []mongo.WriteModel) (*repository.BulkResult, error) {
	return f.record("dyo_expanded_variants", ops)
}

func (f *fakeCatalog) BulkUpsertDYOVariants(ctx context.Context, ops []mongo.WriteModel) (*repository.BulkResult, error) {
	return f.record("dyo_variants", ops)
}

func (f *fakeCatalog) ProductIDsBySKU(ctx context.Context) (map[string]primitive.ObjectID, error) {
	return f.productIDs, nil
}

func (f *fakeCatalog) MetalRates(ctx context.Context) (map[string]float64, error) {
	return f.metalRates, nil
}

// buildWorkbook writes an in-memory xlsx with the given sheets.
func buildWorkbook(t *testing.T, sheets map[string][][]interface{}) io.Reader {
	t.Helper()

	f := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			require.NoError(t, f.SetSheetRow(name, fmt.Sprintf("A%d", i+1), &row))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func opFilter(t *testing.T, op mongo.WriteModel) bson.M {
	t.Helper()
	model, ok := op.(*mongo.UpdateOneModel)
	require.True(t, ok, "expected an update-one model")
	filter, ok := model.Filter.(bson.M)
	require.True(t, ok)
	return filter
}

func opSet(t *testing.T, op mongo.WriteModel) bson.M {
	t.Helper()
	model, ok := op.(*mongo.UpdateOneModel)
	require.True(t, ok, "expected an update-one model")
	update, ok := model.Update.(bson.M)
	require.True(t, ok)
	set, ok := update["$set"].(bson.M)
	require.True(t, ok)
	return set
}

func TestProcessWorkbookFullRun(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.productIDs["RNG-001"] = primitive.NewObjectID()
	catalog.metalRates["18k Yellow Gold"] = 60

	workbook := buildWorkbook(t, map[string][][]interface{}{
		"Metals": {
			{"Metal Type", "Metal Code", "Rate Per Gram", "Active"},
			{"18k Yellow Gold", "18KY", "$60.00/g", "yes"},
			{"Platinum", "PT", "32.50", ""},
		},
		"Products": {
			{"Product SKU", "Name", "Categories", "Price", "Ready To Ship"},
			{"RNG-001", "Solitaire Ring", "rings, engagement", "1,250", "true"},
		},
		"Variants": {
			{"Product SKU", "Variant SKU", "Metal Types", "Center Stone Weights"},
			{"RNG-001", "RNG-001-V", "18k Yellow Gold,Platinum", "0.5, 1.0, 1.5"},
		},
		"ExpandedVariants": {
			{"Product SKU", "Variant SKU", "Metal Code", "Shape Code", "Center Stone Weight", "Price Per Carat", "Metal Price"},
			{"RNG-001", "RNG-001-V", "18KY", "RND", "1.5", "2000", "450"},
		},
		"DYOExpandedVariants": {
			{"Product SKU", "Variant SKU", "Metal Type", "Metal Weight"},
			{"RNG-001", "RNG-001-DV", "18k Yellow Gold", "5.0"},
		},
		"DYOVariants": {
			{"Product SKU", "Metal Types", "Shapes"},
			{"RNG-001", "18k Yellow Gold", "RND,OVL"},
		},
	})

	svc := NewImportService(catalog)
	summary, err := svc.ProcessWorkbook(context.Background(), workbook)
	require.NoError(t, err)

	assert.True(t, summary.Success)
	assert.Empty(t, summary.Issues)
	assert.Equal(t, 2, summary.Results.Metals.Processed)
	assert.Equal(t, 2, summary.Results.Metals.Created)
	assert.Equal(t, 1, summary.Results.Products.Processed)
	assert.Equal(t, 1, summary.Results.VariantSummaries.Processed)
	assert.Equal(t, 1, summary.Results.ExpandedVariants.Processed)
	assert.Equal(t, 1, summary.Results.DYOExpandedVariants.Processed)
	assert.Equal(t, 1, summary.Results.DYOVariants.Processed)
	assert.Equal(t, 7, summary.Results.TotalCreated())
	assert.Contains(t, summary.Summary, "processed/created/updated")

	// Currency and thousand separators are stripped during coercion.
	goldSet := opSet(t, catalog.ops["metals"][0])
	assert.Equal(t, 60.0, goldSet["rate_per_gram"])
	productSet := opSet(t, catalog.ops["products"][0])
	assert.Equal(t, 1250.0, productSet["price"])
	assert.Equal(t, []string{"rings", "engagement"}, productSet["categories"])

	// stone_price falls back to price_per_carat * weight; total sums both.
	expandedSet := opSet(t, catalog.ops["expanded_variants"][0])
	assert.Equal(t, 3000.0, expandedSet["stone_price"])
	assert.Equal(t, 450.0, expandedSet["metal_price"])
	assert.Equal(t, 3450.0, expandedSet["total_price"])

	// metal_price comes from the rates map when the sheet doesn't carry it.
	dyoSet := opSet(t, catalog.ops["dyo_expanded_variants"][0])
	assert.Equal(t, 300.0, dyoSet["metal_price"])

	variantSet := opSet(t, catalog.ops["variants"][0])
	assert.Equal(t, []float64{0.5, 1, 1.5}, variantSet["center_stone_weights"])
}

func TestProcessWorkbookExpandedVariantCompositeKey(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.productIDs["RNG-001"] = primitive.NewObjectID()

	workbook := buildWorkbook(t, map[string][][]interface{}{
		"ExpandedVariants": {
			{"Product SKU", "Variant SKU", "Metal Code", "Shape Code", "Center Stone Weight"},
			{"RNG-001", "RNG-001-V", "18KY", "RND", "1.5"},
			{"RNG-001", "RNG-001-V", "18KY", "RND", ""},
		},
	})

	svc := NewImportService(catalog)
	summary, err := svc.ProcessWorkbook(context.Background(), workbook)
	require.NoError(t, err)
	require.Len(t, catalog.ops["expanded_variants"], 2)
	assert.Equal(t, 2, summary.Results.ExpandedVariants.Processed)

	filter := opFilter(t, catalog.ops["expanded_variants"][0])
	assert.Equal(t, bson.M{
		"variant_sku":         "RNG-001-V",
		"metal_code":          "18KY",
		"shape_code":          "RND",
		"center_stone_weight": 1.5,
	}, filter)

	// Absent weight pins the key component to 0 instead of omitting it.
	filter = opFilter(t, catalog.ops["expanded_variants"][1])
	assert.Equal(t, 0.0, filter["center_stone_weight"])
}

func TestProcessWorkbookDropsRowsAndReportsIssues(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.productIDs["RNG-001"] = primitive.NewObjectID()

	workbook := buildWorkbook(t, map[string][][]interface{}{
		"Metals": {
			{"Metal Type", "Rate Per Gram"},
			{"", "60"},
			{"Platinum", "not a number"},
			{"18k Yellow Gold", "60"},
		},
		"ExpandedVariants": {
			{"Product SKU", "Variant SKU", "Metal Code", "Shape Code"},
			{"MISSING-SKU", "V-1", "18KY", "RND"},
			{"RNG-001", "V-2", "18KY", "RND"},
		},
	})

	svc := NewImportService(catalog)
	summary, err := svc.ProcessWorkbook(context.Background(), workbook)
	require.NoError(t, err)

	// Dropped rows never reach the batch; the sheet still imports.
	assert.Equal(t, 1, summary.Results.Metals.Processed)
	assert.Equal(t, 1, summary.Results.ExpandedVariants.Processed)

	require.Len(t, summary.Issues, 3)
	assert.Equal(t, "Metals", summary.Issues[0].Sheet)
	assert.Equal(t, 2, summary.Issues[0].Row)
	assert.Equal(t, "missing metal_type", summary.Issues[0].Reason)
	assert.Equal(t, 3, summary.Issues[1].Row)
	assert.Contains(t, summary.Issues[1].Reason, "rate_per_gram")
	assert.Equal(t, "ExpandedVariants", summary.Issues[2].Sheet)
	assert.Contains(t, summary.Issues[2].Reason, "MISSING-SKU")
}

func TestProcessWorkbookDYOVariantWithoutProductReference(t *testing.T) {
	catalog := newFakeCatalog()

	workbook := buildWorkbook(t, map[string][][]interface{}{
		"DYOVariants": {
			{"Product SKU", "Metal Types"},
			{"RNG-404", "Platinum"},
		},
	})

	svc := NewImportService(catalog)
	summary, err := svc.ProcessWorkbook(context.Background(), workbook)
	require.NoError(t, err)

	// Unlike the expanded sheets, an unresolved product is not an error here;
	// the row is written without the reference.
	assert.Empty(t, summary.Issues)
	require.Len(t, catalog.ops["dyo_variants"], 1)
	set := opSet(t, catalog.ops["dyo_variants"][0])
	assert.Equal(t, "RNG-404", set["product_sku"])
	_, hasRef := set["product_id"]
	assert.False(t, hasRef)
}

func TestProcessWorkbookSkipsAbsentSheets(t *testing.T) {
	catalog := newFakeCatalog()

	workbook := buildWorkbook(t, map[string][][]interface{}{
		"Metals": {
			{"Metal Type", "Rate Per Gram"},
			{"Platinum", "32.5"},
		},
	})

	svc := NewImportService(catalog)
	summary, err := svc.ProcessWorkbook(context.Background(), workbook)
	require.NoError(t, err)

	assert.True(t, summary.Success)
	assert.Equal(t, 1, summary.Results.Metals.Processed)
	assert.Zero(t, summary.Results.Products.Processed)
	assert.Zero(t, summary.Results.DYOVariants.Processed)
	_, submitted := catalog.ops["products"]
	assert.False(t, submitted)
}

func TestProcessWorkbookUnchangedReimportCountsNothing(t *testing.T) {
	catalog := newFakeCatalog()
	// The database matched every row but modified none of them.
	catalog.results["metals"] = &repository.BulkResult{Matched: 2, Modified: 0, Upserted: 0}

	workbook := buildWorkbook(t, map[string][][]interface{}{
		"Metals": {
			{"Metal Type", "Rate Per Gram"},
			{"Platinum", "32.5"},
			{"18k Yellow Gold", "60"},
		},
	})

	svc := NewImportService(catalog)
	summary, err := svc.ProcessWorkbook(context.Background(), workbook)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Results.Metals.Processed)
	assert.Zero(t, summary.Results.Metals.Created)
	assert.Zero(t, summary.Results.Metals.Updated)

	// Timestamps ride on $setOnInsert only, so a re-import of identical rows
	// cannot dirty the documents.
	model := catalog.ops["metals"][0].(*mongo.UpdateOneModel)
	update := model.Update.(bson.M)
	set := update["$set"].(bson.M)
	_, hasCreated := set["created_at"]
	assert.False(t, hasCreated)
	_, hasUpdated := set["updated_at"]
	assert.False(t, hasUpdated)
	_, hasInsertStamp := update["$setOnInsert"].(bson.M)["created_at"]
	assert.True(t, hasInsertStamp)
}

func TestProcessWorkbookRejectsGarbage(t *testing.T) {
	svc := NewImportService(newFakeCatalog())
	_, err := svc.ProcessWorkbook(context.Background(), bytes.NewReader([]byte("not a workbook")))
	require.Error(t, err)
}
