package builder

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mcncl/wsnode/internal/config"
	"github.com/mcncl/wsnode/internal/errors"
	"github.com/mcncl/wsnode/internal/models"
	"github.com/mcncl/wsnode/internal/node"
	"github.com/mcncl/wsnode/internal/parser"
	"github.com/mcncl/wsnode/internal/render"
)

func loadDocument(t *testing.T, name string) models.Document {
	t.Helper()
	doc, err := parser.ParseFile(filepath.Join("..", "..", "testdata", name))
	require.NoError(t, err)
	return doc
}

func renderTree(t *testing.T, root *node.Node) string {
	t.Helper()
	out, err := render.NewJSON().RenderNode(root)
	require.NoError(t, err)
	return out
}

func TestBuild_ListView(t *testing.T) {
	doc := loadDocument(t, "customer_sessions.yaml")

	root, err := NewBuilder().Build(doc, "")
	require.NoError(t, err)

	assert.Equal(t, node.KindList, root.Kind())
	assert.Equal(t, "customer_sessions", root.Name())
	require.Len(t, root.Children(), 2)
	assert.Equal(t, "customer_session", root.Children()[0].Name())

	expected := `{"customer_sessions":[` +
		`{"id":1,"id_customer":3,"token":"0a4d55a8d778e5022fab701977c5d840bbc486d0"},` +
		`{"id":2,"id_customer":8,"token":"6c1cb3f7bb7f4ec1a5e6d3f5d3a64c88f26bd0c2"}]}`
	assert.Equal(t, expected, renderTree(t, root))
}

func TestBuild_EmptyList(t *testing.T) {
	doc := loadDocument(t, "customer_sessions.yaml")
	doc.Records = nil

	root, err := NewBuilder().Build(doc, "")
	require.NoError(t, err)
	assert.Equal(t, `{"customer_sessions":[]}`, renderTree(t, root))
}

func TestBuild_SingleRecord(t *testing.T) {
	doc := loadDocument(t, "products.json")
	cfg := config.NewConfig()
	cfg.Languages = []string{"en", "fr"}

	root, err := NewBuilderWithConfig(cfg, nil).Build(doc, "1")
	require.NoError(t, err)

	assert.Equal(t, node.KindParent, root.Kind())
	require.Len(t, root.Children(), 1)
	product := root.Children()[0]
	assert.Equal(t, "product", product.Name())

	quantity := product.Children()[3]
	assert.Equal(t, "quantity", quantity.Name())
	assert.Equal(t, []string{"notFilterable"}, quantity.Attributes().Keys())

	expected := `{"product":{"id":1,"id_category_default":2,"price":"19.99","quantity":300,` +
		`"name":[{"id":"en","value":"Hummingbird T-shirt"},{"id":"fr","value":"T-shirt colibri"}],` +
		`"id_default_image":4}}`
	assert.Equal(t, expected, renderTree(t, root))
}

func TestBuild_SubResourceLink(t *testing.T) {
	doc := loadDocument(t, "products.json")

	root, err := NewBuilder().Build(doc, "1")
	require.NoError(t, err)

	image := root.Children()[0].Children()[5]
	href, ok := image.Attributes().Get("xlink:href")
	require.True(t, ok)
	assert.Equal(t, "http://localhost/api/images/products/1/4", href)
}

func TestBuild_RecordNotFound(t *testing.T) {
	doc := loadDocument(t, "customer_sessions.yaml")

	_, err := NewBuilder().Build(doc, "99")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrRecordNotFound)
	assert.Contains(t, err.Error(), "customer_session with id_customer_session '99' does not exist")
}

func TestBuild_MinimalDisplay(t *testing.T) {
	doc := loadDocument(t, "customer_sessions.yaml")
	cfg := config.NewConfig()
	cfg.Display = config.DisplayMinimal

	root, err := NewBuilderWithConfig(cfg, nil).Build(doc, "")
	require.NoError(t, err)

	expected := `{"customer_sessions":[` +
		`{"id":1,"href":"http:\/\/localhost\/api\/customer_sessions\/1"},` +
		`{"id":2,"href":"http:\/\/localhost\/api\/customer_sessions\/2"}]}`
	assert.Equal(t, expected, renderTree(t, root))
}

func TestBuild_SynopsisSchema(t *testing.T) {
	doc := loadDocument(t, "customer_sessions.yaml")
	cfg := config.NewConfig()
	cfg.Schema = "synopsis"

	root, err := NewBuilderWithConfig(cfg, nil).Build(doc, "")
	require.NoError(t, err)

	expected := `{"customer_session":{` +
		`"id_customer":{"required":"true","format":"isUnsignedId","href":"http:\/\/localhost\/api\/customers\/"},` +
		`"token":{"maxSize":"40","format":"isSha1"}}}`
	assert.Equal(t, expected, renderTree(t, root))
}

func TestBuild_BlankSchema(t *testing.T) {
	doc := loadDocument(t, "products.json")
	cfg := config.NewConfig()
	cfg.Schema = "blank"

	root, err := NewBuilderWithConfig(cfg, nil).Build(doc, "1")
	require.NoError(t, err)

	expected := `{"product":{"id":"","id_category_default":"","price":"",` +
		`"name":[{"id":"en","value":""}],"id_default_image":""}}`
	assert.Equal(t, expected, renderTree(t, root))
}

func TestBuild_SnakeCaseNames(t *testing.T) {
	doc, err := parser.ParseString(`
definition:
  resource: orders
  fields:
    - name: dateAdd
    - name: totalPaid
records:
  - id: 5
    dateAdd: "2024-01-01 10:00:00"
    totalPaid: "10.00"
`, parser.FormatYAML)
	require.NoError(t, err)

	cfg := config.NewConfig()
	cfg.Naming.SnakeCase = true
	cfg.Naming.FieldMappings["totalPaid"] = "total_paid_tax_incl"

	root, err := NewBuilderWithConfig(cfg, nil).Build(doc, "5")
	require.NoError(t, err)

	assert.Equal(t,
		`{"order":{"id":5,"date_add":"2024-01-01 10:00:00","total_paid_tax_incl":"10.00"}}`,
		renderTree(t, root))
}

func TestBuild_InvalidLanguages(t *testing.T) {
	doc := loadDocument(t, "products.json")
	cfg := config.NewConfig()
	cfg.Languages = []string{"en", "not a locale"}

	_, err := NewBuilderWithConfig(cfg, nil).Build(doc, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidLocale)
}

func TestBuild_LanguageIdsKeptAsConfigured(t *testing.T) {
	for _, lang := range []string{"fr_FR", "EN", "iw", "1"} {
		t.Run(lang, func(t *testing.T) {
			doc, err := parser.ParseString(`{
				"definition": {"resource": "products", "fields": [{"name": "name", "lang": true}]},
				"records": [{"id": 1, "name": {"`+lang+`": "VALUE"}}]
			}`, parser.FormatJSON)
			require.NoError(t, err)

			cfg := config.NewConfig()
			cfg.Languages = []string{lang}
			root, err := NewBuilderWithConfig(cfg, nil).Build(doc, "1")
			require.NoError(t, err)

			name := root.Children()[0].Children()[1]
			require.Len(t, name.Children(), 1)
			href, _ := name.Children()[0].Attributes().Get("xlink:href")
			assert.Equal(t, "http://localhost/api/languages/"+lang, href)

			expected := `{"product":{"id":1,"name":[{"id":"` + lang + `","value":"VALUE"}]}}`
			assert.Equal(t, expected, renderTree(t, root))
		})
	}
}

func TestBuild_NoDefinition(t *testing.T) {
	_, err := NewBuilder().Build(models.Document{}, "")
	assert.ErrorIs(t, err, errors.ErrInvalidDocument)
}

func TestBuild_LogsAtDebug(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	doc := loadDocument(t, "customer_sessions.yaml")

	_, err := NewBuilderWithConfig(config.NewConfig(), zap.New(core)).Build(doc, "")
	require.NoError(t, err)

	entries := logs.FilterMessage("building list").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ContextMap()["records"])
}
