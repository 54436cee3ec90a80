package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"jewelry-service/models"
	"jewelry-service/repository"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Recognized sheet names, matched case-insensitively.
const (
	sheetMetals              = "metals"
	sheetProducts            = "products"
	sheetVariants            = "variants"
	sheetExpandedVariants    = "expandedvariants"
	sheetDYOExpandedVariants = "dyoexpandedvariants"
	sheetDYOVariants         = "dyovariants"
)

// ImportService reconciles a multi-sheet workbook against the catalog
// collections via natural-key upserts. One call processes one workbook,
// synchronously, sheet by sheet in a fixed order.
type ImportService struct {
	catalog repository.CatalogRepository
}

func NewImportService(catalog repository.CatalogRepository) *ImportService {
	return &ImportService{catalog: catalog}
}

// ProcessWorkbook runs the import pipeline:
//
//  1. Metals (pricing inputs go first so rates are current)
//  2. Products
//  3. Load the product sku->id map once, plus metal rates
//  4. Variants, ExpandedVariants, DYOExpandedVariants, DYOVariants
//
// Sheets absent from the workbook are skipped. Rows that cannot be mapped are
// dropped and reported as issues; the import itself continues.
func (s *ImportService) ProcessWorkbook(ctx context.Context, file io.Reader) (*models.ImportSummary, error) {
	start := time.Now()

	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := indexSheets(f)
	summary := &models.ImportSummary{}
	var issues []models.RowIssue

	if rows, ok := readSheet(f, sheets, sheetMetals); ok {
		summary.Results.Metals, err = s.importMetals(ctx, rows, &issues)
		if err != nil {
			return nil, fmt.Errorf("metals import failed: %w", err)
		}
	}

	if rows, ok := readSheet(f, sheets, sheetProducts); ok {
		summary.Results.Products, err = s.importProducts(ctx, rows, &issues)
		if err != nil {
			return nil, fmt.Errorf("products import failed: %w", err)
		}
	}

	// Built once, after the Products step, so products created by this same
	// workbook resolve in later sheets. Threaded as a parameter from here on.
	productIDs, err := s.catalog.ProductIDsBySKU(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load product map: %w", err)
	}
	metalRates, err := s.catalog.MetalRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load metal rates: %w", err)
	}

	if rows, ok := readSheet(f, sheets, sheetVariants); ok {
		summary.Results.VariantSummaries, err = s.importVariants(ctx, rows, &issues)
		if err != nil {
			return nil, fmt.Errorf("variants import failed: %w", err)
		}
	}

	if rows, ok := readSheet(f, sheets, sheetExpandedVariants); ok {
		summary.Results.ExpandedVariants, err = s.importExpandedVariants(ctx, rows, productIDs, &issues)
		if err != nil {
			return nil, fmt.Errorf("expanded variants import failed: %w", err)
		}
	}

	if rows, ok := readSheet(f, sheets, sheetDYOExpandedVariants); ok {
		summary.Results.DYOExpandedVariants, err = s.importDYOExpandedVariants(ctx, rows, productIDs, metalRates, &issues)
		if err != nil {
			return nil, fmt.Errorf("dyo expanded variants import failed: %w", err)
		}
	}

	if rows, ok := readSheet(f, sheets, sheetDYOVariants); ok {
		summary.Results.DYOVariants, err = s.importDYOVariants(ctx, rows, productIDs, &issues)
		if err != nil {
			return nil, fmt.Errorf("dyo variants import failed: %w", err)
		}
	}

	elapsed := time.Since(start)
	summary.Success = true
	summary.Message = fmt.Sprintf("Import completed: %d created, %d written in total", summary.Results.TotalCreated(), summary.Results.TotalWritten())
	summary.Duration = elapsed.Round(time.Millisecond).String()
	summary.Issues = issues
	summary.Summary = summary.Results.Digest()

	zap.L().Info("Workbook import completed",
		zap.Duration("elapsed", elapsed),
		zap.Int("created", summary.Results.TotalCreated()),
		zap.Int("issues", len(issues)),
	)
	return summary, nil
}

// indexSheets maps normalized sheet names to their actual workbook names.
func indexSheets(f *excelize.File) map[string]string {
	sheets := make(map[string]string)
	for _, name := range f.GetSheetList() {
		sheets[normalizeKey(name)] = name
	}
	return sheets
}

// readSheet loads one sheet into row maps keyed by normalized header names.
// Absent sheets and sheets without at least a header plus one data row are
// skipped.
func readSheet(f *excelize.File, sheets map[string]string, key string) ([]sheetRow, bool) {
	name, ok := sheets[key]
	if !ok {
		return nil, false
	}

	raw, err := f.GetRows(name)
	if err != nil || len(raw) < 2 {
		return nil, false
	}

	headers := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		headers[i] = normalizeKey(h)
	}

	rows := make([]sheetRow, 0, len(raw)-1)
	for i, cells := range raw[1:] {
		row := sheetRow{num: i + 2, cells: make(map[string]string, len(headers))}
		for j, v := range cells {
			if j < len(headers) && headers[j] != "" {
				row.cells[headers[j]] = v
			}
		}
		rows = append(rows, row)
	}
	return rows, true
}

// upsertOp builds an unordered-batch member: update-with-upsert against the
// row's natural key. Timestamps live in $setOnInsert only, so re-importing an
// unchanged workbook reports zero modified documents.
func upsertOp(filter, set bson.M) mongo.WriteModel {
	return mongo.NewUpdateOneModel().
		SetFilter(filter).
		SetUpdate(bson.M{
			"$set":         set,
			"$setOnInsert": bson.M{"created_at": time.Now().UTC()},
		}).
		SetUpsert(true)
}

func sheetResult(processed int, res *repository.BulkResult) models.SheetResult {
	return models.SheetResult{
		Processed: processed,
		Created:   int(res.Upserted),
		Updated:   int(res.Modified),
	}
}

func addIssue(issues *[]models.RowIssue, sheet string, row int, reason string) {
	*issues = append(*issues, models.RowIssue{Sheet: sheet, Row: row, Reason: reason})
}

func (s *ImportService) importMetals(ctx context.Context, rows []sheetRow, issues *[]models.RowIssue) (models.SheetResult, error) {
	var ops []mongo.WriteModel
	for _, row := range rows {
		metalType := row.value("metal_type", "metal", "type")
		if metalType == "" {
			addIssue(issues, "Metals", row.num, "missing metal_type")
			continue
		}
		rate, ok := parseNumber(row.value("rate_per_gram", "rate", "gram_rate"))
		if !ok {
			addIssue(issues, "Metals", row.num, "missing or invalid rate_per_gram")
			continue
		}

		set := bson.M{
			"metal_type":    metalType,
			"rate_per_gram": rate,
			"active":        parseBool(row.value("active", "is_active"), true),
		}
		if v := row.value("metal_code", "code"); v != "" {
			set["metal_code"] = v
		}
		if n, ok := parseNumber(row.value("price_multiplier", "multiplier")); ok {
			set["price_multiplier"] = n
		}

		ops = append(ops, upsertOp(bson.M{"metal_type": metalType}, set))
	}

	res, err := s.catalog.BulkUpsertMetals(ctx, ops)
	if err != nil {
		return models.SheetResult{}, err
	}
	return sheetResult(len(ops), res), nil
}

func (s *ImportService) importProducts(ctx context.Context, rows []sheetRow, issues *[]models.RowIssue) (models.SheetResult, error) {
	var ops []mongo.WriteModel
	for _, row := range rows {
		productSKU := row.value("product_sku", "sku")
		if productSKU == "" {
			addIssue(issues, "Products", row.num, "missing product_sku")
			continue
		}

		set := bson.M{
			"product_sku":       productSKU,
			"ready_to_ship":     parseBool(row.value("ready_to_ship", "rts"), false),
			"engraving_allowed": parseBool(row.value("engraving_allowed", "engraving"), false),
			"active":            parseBool(row.value("active", "is_active"), true),
		}
		if v := row.value("product_name", "name", "title"); v != "" {
			set["name"] = v
		}
		if v := row.value("description", "product_description"); v != "" {
			set["description"] = v
		}
		if v := row.value("categories", "category"); v != "" {
			if list := parseStringList(v); len(list) > 0 {
				set["categories"] = list
			}
		}
		if v := row.value("style", "product_style"); v != "" {
			set["style"] = v
		}
		if v := row.value("shape", "default_shape"); v != "" {
			set["shape"] = v
		}
		if n, ok := parseNumber(row.value("price", "default_price", "base_price")); ok {
			set["price"] = n
		}
		if v := row.value("images", "image_urls"); v != "" {
			if list := parseStringList(v); len(list) > 0 {
				set["images"] = list
			}
		}
		if t, ok := parseDate(row.value("launch_date", "release_date")); ok {
			set["launch_date"] = t
		}

		ops = append(ops, upsertOp(bson.M{"product_sku": productSKU}, set))
	}

	res, err := s.catalog.BulkUpsertProducts(ctx, ops)
	if err != nil {
		return models.SheetResult{}, err
	}
	return sheetResult(len(ops), res), nil
}

func (s *ImportService) importVariants(ctx context.Context, rows []sheetRow, issues *[]models.RowIssue) (models.SheetResult, error) {
	var ops []mongo.WriteModel
	for _, row := range rows {
		productSKU := row.value("product_sku")
		variantSKU := row.value("variant_sku")
		if productSKU == "" || variantSKU == "" {
			addIssue(issues, "Variants", row.num, "missing product_sku or variant_sku")
			continue
		}

		set := bson.M{
			"variant_sku":   variantSKU,
			"product_sku":   productSKU,
			"ready_to_ship": parseBool(row.value("ready_to_ship", "rts"), false),
			"active":        parseBool(row.value("active", "is_active"), true),
		}
		if v := row.value("metal_types", "metals"); v != "" {
			if list := parseStringList(v); len(list) > 0 {
				set["metal_types"] = list
			}
		}
		if v := row.value("shapes", "shape_codes"); v != "" {
			if list := parseStringList(v); len(list) > 0 {
				set["shapes"] = list
			}
		}
		if v := row.value("center_stone_weights", "stone_weights", "carats"); v != "" {
			if list := parseNumberList(v); len(list) > 0 {
				set["center_stone_weights"] = list
			}
		}
		if n, ok := parseNumber(row.value("stock", "quantity")); ok {
			set["stock"] = n
		}

		ops = append(ops, upsertOp(bson.M{"variant_sku": variantSKU}, set))
	}

	res, err := s.catalog.BulkUpsertVariants(ctx, ops)
	if err != nil {
		return models.SheetResult{}, err
	}
	return sheetResult(len(ops), res), nil
}

func (s *ImportService) importExpandedVariants(ctx context.Context, rows []sheetRow, productIDs map[string]primitive.ObjectID, issues *[]models.RowIssue) (models.SheetResult, error) {
	var ops []mongo.WriteModel
	for _, row := range rows {
		productSKU := row.value("product_sku")
		variantSKU := row.value("variant_sku")
		if productSKU == "" || variantSKU == "" {
			addIssue(issues, "ExpandedVariants", row.num, "missing product_sku or variant_sku")
			continue
		}
		productID, ok := productIDs[productSKU]
		if !ok {
			addIssue(issues, "ExpandedVariants", row.num, fmt.Sprintf("unknown product_sku %q", productSKU))
			continue
		}

		metalCode := row.value("metal_code")
		shapeCode := row.value("shape_code", "shape")
		// Part of the upsert identity; an absent weight pins the row to 0 so
		// it still has a stable key.
		stoneWeight, _ := parseNumber(row.value("center_stone_weight", "stone_weight", "carat"))

		set := bson.M{
			"variant_sku":         variantSKU,
			"product_id":          productID,
			"product_sku":         productSKU,
			"metal_code":          metalCode,
			"shape_code":          shapeCode,
			"center_stone_weight": stoneWeight,
		}
		if v := row.value("metal_type", "metal"); v != "" {
			set["metal_type"] = v
		}

		stonePrice, hasStonePrice := parseNumber(row.value("stone_price"))
		if !hasStonePrice {
			if perCarat, ok := parseNumber(row.value("price_per_carat", "carat_price")); ok {
				stonePrice = StonePrice(perCarat, stoneWeight)
				hasStonePrice = stonePrice > 0
			}
		}
		if hasStonePrice {
			set["stone_price"] = stonePrice
		}

		metalPrice, hasMetalPrice := parseNumber(row.value("metal_price"))
		if hasMetalPrice {
			set["metal_price"] = metalPrice
		}
		if hasStonePrice || hasMetalPrice {
			set["total_price"] = TotalPrice(stonePrice, metalPrice)
		}
		if n, ok := parseNumber(row.value("stock", "quantity")); ok {
			set["stock"] = n
		}

		// Composite key: one variant SKU expands into many metal x shape x
		// stone-weight rows without overwriting each other.
		filter := bson.M{
			"variant_sku":         variantSKU,
			"metal_code":          metalCode,
			"shape_code":          shapeCode,
			"center_stone_weight": stoneWeight,
		}
		ops = append(ops, upsertOp(filter, set))
	}

	res, err := s.catalog.BulkUpsertExpandedVariants(ctx, ops)
	if err != nil {
		return models.SheetResult{}, err
	}
	return sheetResult(len(ops), res), nil
}

func (s *ImportService) importDYOExpandedVariants(ctx context.Context, rows []sheetRow, productIDs map[string]primitive.ObjectID, metalRates map[string]float64, issues *[]models.RowIssue) (models.SheetResult, error) {
	var ops []mongo.WriteModel
	for _, row := range rows {
		productSKU := row.value("product_sku")
		variantSKU := row.value("variant_sku")
		if productSKU == "" || variantSKU == "" {
			addIssue(issues, "DYOExpandedVariants", row.num, "missing product_sku or variant_sku")
			continue
		}
		productID, ok := productIDs[productSKU]
		if !ok {
			addIssue(issues, "DYOExpandedVariants", row.num, fmt.Sprintf("unknown product_sku %q", productSKU))
			continue
		}

		set := bson.M{
			"variant_sku":   variantSKU,
			"product_id":    productID,
			"product_sku":   productSKU,
			"ready_to_ship": parseBool(row.value("ready_to_ship", "rts"), false),
		}
		metalType := row.value("metal_type", "metal")
		if metalType != "" {
			set["metal_type"] = metalType
		}
		if v := row.value("metal_code"); v != "" {
			set["metal_code"] = v
		}
		if v := row.value("shape_code", "shape"); v != "" {
			set["shape_code"] = v
		}

		metalWeight, hasWeight := parseNumber(row.value("metal_weight", "weight", "gross_weight"))
		if hasWeight {
			set["metal_weight"] = metalWeight
		}
		if price, ok := parseNumber(row.value("metal_price")); ok {
			set["metal_price"] = price
		} else if hasWeight {
			// Priced from the rates the Metals step just refreshed.
			if rate, ok := metalRates[metalType]; ok {
				if cost := MetalCost(rate, metalWeight); cost > 0 {
					set["metal_price"] = cost
				}
			}
		}

		ops = append(ops, upsertOp(bson.M{"variant_sku": variantSKU}, set))
	}

	res, err := s.catalog.BulkUpsertDYOExpandedVariants(ctx, ops)
	if err != nil {
		return models.SheetResult{}, err
	}
	return sheetResult(len(ops), res), nil
}

func (s *ImportService) importDYOVariants(ctx context.Context, rows []sheetRow, productIDs map[string]primitive.ObjectID, issues *[]models.RowIssue) (models.SheetResult, error) {
	var ops []mongo.WriteModel
	for _, row := range rows {
		productSKU := row.value("product_sku")
		if productSKU == "" {
			addIssue(issues, "DYOVariants", row.num, "missing product_sku")
			continue
		}

		set := bson.M{"product_sku": productSKU}
		// Loosely coupled: the row is written even when the owning product is
		// not imported yet; the reference is simply omitted.
		if productID, ok := productIDs[productSKU]; ok {
			set["product_id"] = productID
		}
		if v := row.value("metal_types", "metals"); v != "" {
			if list := parseStringList(v); len(list) > 0 {
				set["metal_types"] = list
			}
		}
		if v := row.value("shapes", "shape_codes"); v != "" {
			if list := parseStringList(v); len(list) > 0 {
				set["shapes"] = list
			}
		}

		ops = append(ops, upsertOp(bson.M{"product_sku": productSKU}, set))
	}

	res, err := s.catalog.BulkUpsertDYOVariants(ctx, ops)
	if err != nil {
		return models.SheetResult{}, err
	}
	return sheetResult(len(ops), res), nil
}
