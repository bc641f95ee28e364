package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_BasicSelect(t *testing.T) {
	stmt := From("inventory").
		Select("id", "title", "product_type").
		Build()

	assert.Equal(t, "SELECT id, title, product_type FROM inventory", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_SelectAllColumns(t *testing.T) {
	stmt := From("inventory").Build()

	assert.Equal(t, "SELECT * FROM inventory", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_MultipleWhereConditions(t *testing.T) {
	stmt := From("orders").
		Select("id", "status").
		Where(Eq("status", "PENDING")).
		Where(Eq("user_id", int64(7))).
		Build()

	assert.Equal(t, "SELECT id, status FROM orders WHERE status = @p0 AND user_id = @p1", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": "PENDING",
		"p1": int64(7),
	}, stmt.Params)
}

func TestBuilder_OrderBy(t *testing.T) {
	t.Run("ascending", func(t *testing.T) {
		stmt := From("inventory").Select("id").OrderBy("title", Asc).Build()
		assert.Equal(t, "SELECT id FROM inventory ORDER BY title ASC", stmt.SQL)
	})

	t.Run("descending", func(t *testing.T) {
		stmt := From("inventory").Select("id").OrderBy("created_at", Desc).Build()
		assert.Equal(t, "SELECT id FROM inventory ORDER BY created_at DESC", stmt.SQL)
	})

	t.Run("secondary key", func(t *testing.T) {
		stmt := From("inventory").
			Select("id").
			OrderBy(SafeCastFloat64("variant_price"), Desc).
			ThenBy("id", Asc).
			Build()
		assert.Equal(t, "SELECT id FROM inventory ORDER BY SAFE_CAST(variant_price AS FLOAT64) DESC, id ASC", stmt.SQL)
	})

	t.Run("OrderBy replaces previous keys", func(t *testing.T) {
		stmt := From("inventory").
			Select("id").
			OrderBy("title", Asc).
			ThenBy("id", Asc).
			OrderBy("quantity", Desc).
			Build()
		assert.Equal(t, "SELECT id FROM inventory ORDER BY quantity DESC", stmt.SQL)
	})

	t.Run("ThenBy without OrderBy", func(t *testing.T) {
		stmt := From("inventory").Select("id").ThenBy("id", Asc).Build()
		assert.Equal(t, "SELECT id FROM inventory ORDER BY id ASC", stmt.SQL)
	})
}

func TestBuilder_LimitAndOffset(t *testing.T) {
	stmt := From("inventory").
		Select("id", "title").
		Limit(9).
		Offset(18).
		Build()

	assert.Equal(t, "SELECT id, title FROM inventory LIMIT @limit OFFSET @offset", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"limit":  int64(9),
		"offset": int64(18),
	}, stmt.Params)
}

func TestBuilder_ZeroOffsetOmitted(t *testing.T) {
	stmt := From("inventory").Select("id").Limit(9).Offset(0).Build()

	assert.Equal(t, "SELECT id FROM inventory LIMIT @limit", stmt.SQL)
	assert.NotContains(t, stmt.Params, "offset")
}

func TestBuilder_CatalogQuery(t *testing.T) {
	base := From("inventory").
		Select("id", "title").
		Where(NotEmpty("title")).
		Where(Or(
			ContainsFold("title", "Widget"),
			ContainsFold("tags", "Widget"),
			ContainsFold("handle", "Widget"),
		)).
		Where(EqFold("product_type", "Tools")).
		Where(Between(SafeCastFloat64("variant_price"), 10.0, 50.0))

	stmt := base.
		OrderBy(SafeCastFloat64("variant_price"), Asc).
		ThenBy("id", Asc).
		Limit(9).
		Offset(9).
		Build()

	expectedSQL := "SELECT id, title FROM inventory WHERE (title IS NOT NULL AND title != '')" +
		" AND (STRPOS(LOWER(IFNULL(title, '')), @p0) > 0 OR STRPOS(LOWER(IFNULL(tags, '')), @p1) > 0 OR STRPOS(LOWER(IFNULL(handle, '')), @p2) > 0)" +
		" AND LOWER(product_type) = @p3" +
		" AND SAFE_CAST(variant_price AS FLOAT64) BETWEEN @p4 AND @p5" +
		" ORDER BY SAFE_CAST(variant_price AS FLOAT64) ASC, id ASC LIMIT @limit OFFSET @offset"
	assert.Equal(t, expectedSQL, stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0":     "widget",
		"p1":     "widget",
		"p2":     "widget",
		"p3":     "tools",
		"p4":     10.0,
		"p5":     50.0,
		"limit":  int64(9),
		"offset": int64(9),
	}, stmt.Params)

	// Count query - should reuse WHERE but not pagination/ordering
	countStmt := base.Count().Build()
	assert.Equal(t, "SELECT COUNT(*) FROM inventory WHERE (title IS NOT NULL AND title != '')"+
		" AND (STRPOS(LOWER(IFNULL(title, '')), @p0) > 0 OR STRPOS(LOWER(IFNULL(tags, '')), @p1) > 0 OR STRPOS(LOWER(IFNULL(handle, '')), @p2) > 0)"+
		" AND LOWER(product_type) = @p3"+
		" AND SAFE_CAST(variant_price AS FLOAT64) BETWEEN @p4 AND @p5", countStmt.SQL)
	assert.Len(t, countStmt.Params, 6)
}

func TestBuilder_Count(t *testing.T) {
	builder := From("orders").
		Select("id", "status").
		Where(Eq("status", "SHIPPED")).
		OrderBy("created_at", Desc).
		Limit(50).
		Offset(100)

	mainStmt := builder.Build()
	countStmt := builder.Count().Build()
	assert.Equal(t, "SELECT COUNT(*) FROM orders WHERE status = @p0", countStmt.SQL)
	assert.Equal(t, map[string]interface{}{"p0": "SHIPPED"}, countStmt.Params)

	// Verify original builder is unchanged (immutability)
	assert.Equal(t, mainStmt.SQL, builder.Build().SQL)
}

func TestBuilder_CountWithoutFilters(t *testing.T) {
	stmt := From("inventory").Select("id").Count().Build()

	assert.Equal(t, "SELECT COUNT(*) FROM inventory", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_Delete(t *testing.T) {
	cutoff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("with conditions", func(t *testing.T) {
		stmt := From("otps").
			Select("id").
			Where(Lt("expires_at", cutoff)).
			OrderBy("id", Asc).
			Limit(10).
			Delete().
			Build()

		assert.Equal(t, "DELETE FROM otps WHERE expires_at < @p0", stmt.SQL)
		assert.Equal(t, map[string]interface{}{"p0": cutoff}, stmt.Params)
	})

	t.Run("without conditions", func(t *testing.T) {
		stmt := From("otps").Delete().Build()
		assert.Equal(t, "DELETE FROM otps WHERE true", stmt.SQL)
	})

	t.Run("count after delete selects again", func(t *testing.T) {
		stmt := From("otps").Delete().Count().Build()
		assert.Equal(t, "SELECT COUNT(*) FROM otps", stmt.SQL)
	})
}

func TestBuilder_Immutability(t *testing.T) {
	base := From("inventory").Select("id")

	stmt1 := base.Where(Eq("handle", "blue-widget")).Build()
	stmt2 := base.Where(Eq("product_type", "Tools")).Build()

	assert.Contains(t, stmt1.SQL, "handle = @p0")
	assert.NotContains(t, stmt1.SQL, "product_type")

	assert.Contains(t, stmt2.SQL, "product_type = @p0")
	assert.NotContains(t, stmt2.SQL, "handle")

	ordered := base.OrderBy("title", Asc)
	_ = ordered.ThenBy("id", Asc)
	assert.Equal(t, "SELECT id FROM inventory ORDER BY title ASC", ordered.Build().SQL)
}

func TestCondition_Comparisons(t *testing.T) {
	sql, params := Eq("product_type", "Tools").SQL(5)
	assert.Equal(t, "product_type = @p5", sql)
	assert.Equal(t, map[string]interface{}{"p5": "Tools"}, params)

	sql, params = Lt("created_at", 3).SQL(0)
	assert.Equal(t, "created_at < @p0", sql)
	assert.Equal(t, map[string]interface{}{"p0": 3}, params)

	sql, params = Gte("rating", int64(1)).SQL(2)
	assert.Equal(t, "rating >= @p2", sql)
	assert.Equal(t, map[string]interface{}{"p2": int64(1)}, params)
}

func TestCondition_NullChecks(t *testing.T) {
	sql, params := IsNull("processed_at").SQL(0)
	assert.Equal(t, "processed_at IS NULL", sql)
	assert.Empty(t, params)

	sql, params = IsNotNull("image_src").SQL(0)
	assert.Equal(t, "image_src IS NOT NULL", sql)
	assert.Empty(t, params)

	sql, params = NotEmpty("title").SQL(3)
	assert.Equal(t, "(title IS NOT NULL AND title != '')", sql)
	assert.Empty(t, params)
}

func TestCondition_ContainsFoldLowercasesValue(t *testing.T) {
	sql, params := ContainsFold("title", "BLUE Widget").SQL(1)

	assert.Equal(t, "STRPOS(LOWER(IFNULL(title, '')), @p1) > 0", sql)
	assert.Equal(t, map[string]interface{}{"p1": "blue widget"}, params)
}

func TestCondition_EqFold(t *testing.T) {
	sql, params := EqFold("product_type", "TOOLS").SQL(0)

	assert.Equal(t, "LOWER(product_type) = @p0", sql)
	assert.Equal(t, map[string]interface{}{"p0": "tools"}, params)
}

func TestCondition_Between(t *testing.T) {
	sql, params := Between("price", 0.0, 1000.0).SQL(2)

	assert.Equal(t, "price BETWEEN @p2 AND @p3", sql)
	assert.Equal(t, map[string]interface{}{"p2": 0.0, "p3": 1000.0}, params)
}

func TestCondition_NestedGroups(t *testing.T) {
	cond := Or(
		And(Eq("status", "completed"), Lt("processed_at", 1)),
		And(Eq("status", "failed"), Lt("processed_at", 2)),
	)
	sql, params := cond.SQL(0)

	assert.Equal(t, "((status = @p0 AND processed_at < @p1) OR (status = @p2 AND processed_at < @p3))", sql)
	assert.Equal(t, map[string]interface{}{
		"p0": "completed",
		"p1": 1,
		"p2": "failed",
		"p3": 2,
	}, params)
}

func TestBuilder_ParamIndexAfterParamlessCondition(t *testing.T) {
	stmt := From("inventory").
		Where(NotEmpty("title")).
		Where(IsNotNull("image_src")).
		Where(Eq("handle", "h")).
		Build()

	assert.Equal(t, "SELECT * FROM inventory WHERE (title IS NOT NULL AND title != '') AND image_src IS NOT NULL AND handle = @p0", stmt.SQL)
	assert.Equal(t, map[string]interface{}{"p0": "h"}, stmt.Params)
}

func TestBuilder_String(t *testing.T) {
	builder := From("inventory").
		Select("id", "title").
		Where(Eq("handle", "blue-widget"))

	str := builder.String()
	require.NotEmpty(t, str)
	assert.Contains(t, str, "SQL:")
	assert.Contains(t, str, "Params:")
	assert.Contains(t, str, "inventory")
}
