// Package builder turns resource documents into node trees ready for rendering.
package builder

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mcncl/wsnode/internal/config"
	"github.com/mcncl/wsnode/internal/errors"
	"github.com/mcncl/wsnode/internal/locale"
	"github.com/mcncl/wsnode/internal/models"
	"github.com/mcncl/wsnode/internal/node"
	"github.com/mcncl/wsnode/internal/schema"
)

// Builder builds node trees from documents
type Builder struct {
	// config holds the display settings
	config *config.Config
	logger *zap.Logger
}

// NewBuilder creates a Builder with the default configuration.
func NewBuilder() *Builder {
	return NewBuilderWithConfig(config.NewConfig(), nil)
}

// NewBuilderWithConfig creates a Builder with custom configuration. A nil
// logger discards output.
func NewBuilderWithConfig(cfg *config.Config, logger *zap.Logger) *Builder {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{config: cfg, logger: logger}
}

// Build returns the tree for doc. An empty id builds the list view of every
// record; otherwise the single record with that primary key is built.
// Synopsis and blank schemas always build a single skeleton record.
func (b *Builder) Build(doc models.Document, id string) (*node.Node, error) {
	if doc.Definition == nil {
		return nil, errors.NewBuildError("document has no definition", errors.ErrInvalidDocument)
	}

	ctx, err := b.fieldContext()
	if err != nil {
		return nil, err
	}
	def := doc.Definition

	switch {
	case ctx.Schema != node.SchemaFull:
		b.logger.Debug("building schema",
			zap.String("resource", def.Resource),
			zap.Stringer("schema", ctx.Schema))
		root := node.Parent(def.Resource, nil)
		b.addRecord(root, def, models.JSONObject{}, ctx)
		return root, nil

	case id != "":
		record, ok := doc.Record(id)
		if !ok {
			return nil, errors.NewBuildError(
				fmt.Sprintf("%s with %s '%s' does not exist", def.Singular, def.Primary, id),
				errors.ErrRecordNotFound,
			)
		}
		b.logger.Debug("building record",
			zap.String("resource", def.Resource),
			zap.String("id", id))
		root := node.Parent(def.Resource, nil)
		b.addRecord(root, def, record, ctx)
		return root, nil

	default:
		b.logger.Debug("building list",
			zap.String("resource", def.Resource),
			zap.Int("records", len(doc.Records)),
			zap.String("display", b.config.Display))
		root := node.List(def.Resource, nil)
		for _, record := range doc.Records {
			b.addRecord(root, def, record, ctx)
		}
		return root, nil
	}
}

func (b *Builder) fieldContext() (node.FieldContext, error) {
	langs, err := locale.IDs(b.config.Languages)
	if err != nil {
		return node.FieldContext{}, errors.NewBuildError("invalid language list", err)
	}
	return node.FieldContext{
		Languages: langs,
		BaseURL:   b.config.BaseURL,
		Schema:    node.ParseSchemaMode(b.config.Schema),
	}, nil
}

// addRecord appends the node of one record to parent
func (b *Builder) addRecord(parent *node.Node, def *schema.Definition, record models.JSONObject, ctx node.FieldContext) {
	if b.config.Display == config.DisplayMinimal && ctx.Schema == node.SchemaFull {
		objectID := record[def.Primary]
		attrs := node.NewAttributes(node.Attribute{
			Name:  "xlink:href",
			Value: fmt.Sprintf("%s%s/%v", ctx.BaseURL, def.Resource, objectID),
		})
		parent.AddParentNode(def.Singular, attrs).AddValueNode(schema.IDField, objectID)
		return
	}

	entry := parent.AddParentNode(def.Singular, nil)
	for _, field := range def.Descriptors(record, ctx.Schema) {
		field[node.KeySQLID] = b.config.NodeName(field.String(node.KeySQLID))
		entry.AddField(field, ctx)
	}
}
