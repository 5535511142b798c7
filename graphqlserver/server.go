package graphqlserver

import (
	"context"
	"encoding/json"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"gorm.io/gorm"

	"foodcourt.GO/graphql"
	gqlmodels "foodcourt.GO/graphql/models"
	"foodcourt.GO/graphql/registry"
	"foodcourt.GO/graphql/resolvers"
	"foodcourt.GO/service/configurator"
)

// RootResolver is the root for graphql-go. Query resolvers are created
// per request with the location context from headers/variables.
type RootResolver struct {
	DB *gorm.DB
}

// Query returns the query resolver.
func (r *RootResolver) Query() *QueryResolver {
	return &QueryResolver{db: r.DB}
}

// QueryResolver implements Query fields. Delegates to resolvers package.
type QueryResolver struct {
	db *gorm.DB
}

func (r *QueryResolver) resolver(ctx context.Context) *resolvers.Resolver {
	return resolvers.NewResolver(r.db, graphql.LocationFromContext(ctx))
}

func (r *QueryResolver) MenuItems(ctx context.Context) ([]*gqlmodels.MenuItem, error) {
	return r.resolver(ctx).MenuItems(ctx)
}

// MenuItemArgs matches the menuItem query arguments.
type MenuItemArgs struct {
	Sku string
}

func (r *QueryResolver) MenuItem(ctx context.Context, args MenuItemArgs) (*gqlmodels.MenuItem, error) {
	return r.resolver(ctx).MenuItem(ctx, args.Sku)
}

// MenuOptionsArgs matches the menuOptions query arguments. Selections is a
// JSON object of category key to value id.
type MenuOptionsArgs struct {
	Sku        string
	Selections *string
}

func (r *QueryResolver) MenuOptions(ctx context.Context, args MenuOptionsArgs) ([]*gqlmodels.OptionGroup, error) {
	return r.resolver(ctx).MenuOptions(ctx, args.Sku, decodeSelections(args.Selections))
}

// QuoteArgs matches the quote query arguments. Selections and Toppings are
// JSON-encoded, mirroring the _extension convention.
type QuoteArgs struct {
	Sku        string
	Selections *string
	Toppings   *string
}

func (r *QueryResolver) Quote(ctx context.Context, args QuoteArgs) (*gqlmodels.Quote, error) {
	return r.resolver(ctx).Quote(ctx, args.Sku, decodeSelections(args.Selections), decodeToppings(args.Toppings))
}

func decodeSelections(raw *string) configurator.Selections {
	sels := configurator.Selections{}
	if raw != nil && *raw != "" {
		_ = json.Unmarshal([]byte(*raw), &sels)
	}
	return sels
}

func decodeToppings(raw *string) []configurator.ToppingSelection {
	var out []configurator.ToppingSelection
	if raw != nil && *raw != "" {
		_ = json.Unmarshal([]byte(*raw), &out)
	}
	return out
}

// ExtensionArgs for _extension(name, args).
type ExtensionArgs struct {
	Name string
	Args *string
}

func (r *QueryResolver) Extension(ctx context.Context, args ExtensionArgs) (*string, error) {
	var m map[string]interface{}
	if args.Args != nil && *args.Args != "" {
		_ = json.Unmarshal([]byte(*args.Args), &m)
	}
	if m == nil {
		m = make(map[string]interface{})
	}
	out, err := registry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(db *gorm.DB) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), &RootResolver{DB: db}, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
