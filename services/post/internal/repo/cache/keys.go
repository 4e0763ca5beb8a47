package cache

const (
	WorkingSetKey = "posts:working-set"
	TagsKey       = "posts:tags"
	CategoriesKey = "posts:categories"
)

var derivedKeys = []string{WorkingSetKey, TagsKey, CategoriesKey}
