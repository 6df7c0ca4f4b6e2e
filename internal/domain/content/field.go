package content

// Field names a searchable attribute of an Item.
type Field string

// Searchable fields.
const (
	FieldTitle        Field = "title"
	FieldBody         Field = "body"
	FieldTags         Field = "tags"
	FieldAuthor       Field = "author"
	FieldTechnologies Field = "technologies"
)

// accessor reads the text values of one field from an item.
type accessor func(it *Item) []string

var (
	titleOf   accessor = func(it *Item) []string { return []string{it.title} }
	bodyOf    accessor = func(it *Item) []string { return []string{it.body, it.summary} }
	tagsOf    accessor = func(it *Item) []string { return it.tags }
	creditsOf accessor = func(it *Item) []string { return it.credits }
)

type fieldAccessor struct {
	field Field
	read  accessor
}

// searchable is the per-kind field table consumed by the matcher.
// Order is the order fields are reported in.
var searchable = map[Kind][]fieldAccessor{
	Essay: {
		{FieldTitle, titleOf},
		{FieldBody, bodyOf},
		{FieldTags, tagsOf},
	},
	Project: {
		{FieldTitle, titleOf},
		{FieldBody, bodyOf},
		{FieldTechnologies, creditsOf},
	},
	Book: {
		{FieldTitle, titleOf},
		{FieldBody, bodyOf},
		{FieldTags, tagsOf},
		{FieldAuthor, creditsOf},
	},
}

// SearchableFields returns the fields searched for the given kind.
func SearchableFields(k Kind) []Field {
	table := searchable[k]
	out := make([]Field, len(table))
	for i, fa := range table {
		out[i] = fa.field
	}
	return out
}

// Values returns the text values of field f, or nil when the kind does not carry it.
func (it *Item) Values(f Field) []string {
	for _, fa := range searchable[it.kind] {
		if fa.field == f {
			return fa.read(it)
		}
	}
	return nil
}
