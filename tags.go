package pagemill

// CollectTags builds a TaggedSet from already-discovered posts, for callers
// that resolve metadata from a MetaDB instead of a front-matter scan. Slug
// order within each tag follows the post order, so a date-sorted input
// yields a date-sorted set.
func CollectTags(posts []Post) TaggedSet {
	tagged := make(TaggedSet)
	for _, p := range posts {
		for _, t := range p.Tags {
			tag := normalizeTag(t)
			if tag == "" {
				continue
			}
			tagged[tag] = append(tagged[tag], p.Slug)
		}
	}
	return tagged
}
