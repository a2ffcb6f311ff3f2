package schema

// Field types understood by the document store.
const (
	TypeString   = "string"
	TypeText     = "text"
	TypeSlug     = "slug"
	TypeArray    = "array"
	TypeDatetime = "datetime"
	TypeImage    = "image"
	TypeURL      = "url"
	TypeBoolean  = "boolean"
)

// Option is a selectable value of a list field.
type Option struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// Field declares a single document field.
type Field struct {
	Name         string   `json:"name"`
	Title        string   `json:"title"`
	Type         string   `json:"type"`
	Description  string   `json:"description,omitempty"`
	Required     bool     `json:"required,omitempty"`
	Options      []Option `json:"options,omitempty"`
	InitialValue any      `json:"initialValue,omitempty"`
	MaxLength    int      `json:"maxLength,omitempty"`
	// Source names the field a slug is generated from.
	Source string `json:"source,omitempty"`
	// Rows hints the editor height of text fields.
	Rows int `json:"rows,omitempty"`
	// Hotspot enables focal point editing on image fields.
	Hotspot bool `json:"hotspot,omitempty"`
}

// DocumentType declares a document and its fields.
type DocumentType struct {
	Name   string  `json:"name"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Field returns the named field.
func (d DocumentType) Field(name string) (Field, bool) {
	for _, field := range d.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// InitialValues returns the values a new document starts with.
func (d DocumentType) InitialValues() map[string]any {
	values := map[string]any{}
	for _, field := range d.Fields {
		if field.InitialValue != nil {
			values[field.Name] = field.InitialValue
		}
	}
	return values
}

// Categories accepted by the post category field.
const (
	CategoryTutorial    = "tutorial"
	CategoryTips        = "tips"
	CategoryDevelopment = "development"
	CategoryDesign      = "design"
	CategoryGeral       = "geral"
)

const SlugMaxLength = 96

// Post returns the post document type as registered in the studio.
func Post() DocumentType {
	return DocumentType{
		Name:  "post",
		Title: "Post",
		Fields: []Field{
			{Name: "title", Title: "Título", Type: TypeString, Required: true},
			{Name: "slug", Title: "Slug", Type: TypeSlug, Required: true, Source: "title", MaxLength: SlugMaxLength},
			{Name: "description", Title: "Descrição", Type: TypeText, Required: true, Rows: 3},
			{Name: "content", Title: "Conteúdo", Type: TypeText, Required: true, Description: "Escreva o conteúdo em Markdown ou HTML"},
			{
				Name:  "category",
				Title: "Categoria",
				Type:  TypeString,
				Options: []Option{
					{Title: "Tutorial", Value: CategoryTutorial},
					{Title: "Tips", Value: CategoryTips},
					{Title: "Development", Value: CategoryDevelopment},
					{Title: "Design", Value: CategoryDesign},
					{Title: "Geral", Value: CategoryGeral},
				},
				InitialValue: CategoryGeral,
			},
			{Name: "tags", Title: "Tags", Type: TypeArray},
			{Name: "author", Title: "Autor", Type: TypeString, InitialValue: "I.C.L"},
			{Name: "publishedAt", Title: "Data de Publicação", Type: TypeDatetime, Required: true},
			{Name: "image", Title: "Imagem", Type: TypeImage, Hotspot: true},
			{Name: "videoUrl", Title: "URL do Vídeo", Type: TypeURL, Description: "URL do vídeo (YouTube, Vimeo, etc)"},
			{Name: "published", Title: "Publicado", Type: TypeBoolean, InitialValue: true, Description: "Controla se o post é visível no blog"},
		},
	}
}
