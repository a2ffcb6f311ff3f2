package sanity

// GROQ queries issued by Source. Every query filters to published posts.
const (
	queryAllPublished = `*[_type == "post" && published == true] | order(publishedAt desc)`
	queryBySlug       = `*[_type == "post" && slug.current == $slug && published == true][0]`
	queryByCategory   = `*[_type == "post" && category == $category && published == true] | order(publishedAt desc)`
	queryByTag        = `*[_type == "post" && $tagName in tags && published == true] | order(publishedAt desc)`
	queryCategories   = `array::unique(*[_type == "post" && published == true].category) | order(@ asc)`
	queryTags         = `array::unique(*[_type == "post" && published == true].tags[]) | order(@ asc)`
)
