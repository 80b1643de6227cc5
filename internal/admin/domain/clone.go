package domain

// Clone returns a deep copy of s so callers cannot alias stored slices.
func (s *Submission) Clone() *Submission {
	if s == nil {
		return nil
	}
	out := *s
	out.Cuisines = append(CuisineList(nil), s.Cuisines...)
	out.Menu = cloneMenu(s.Menu)
	out.BestItems = append([]BestItem(nil), s.BestItems...)
	out.Gallery = append(URLList(nil), s.Gallery...)
	out.Videos = append(URLList(nil), s.Videos...)
	return &out
}

// Clone returns a deep copy of r.
func (r *Restaurant) Clone() *Restaurant {
	if r == nil {
		return nil
	}
	out := *r
	out.Cuisines = append(CuisineList(nil), r.Cuisines...)
	out.Menu = cloneMenu(r.Menu)
	out.BestItems = append([]BestItem(nil), r.BestItems...)
	out.Gallery = append(URLList(nil), r.Gallery...)
	out.Videos = append(URLList(nil), r.Videos...)
	return &out
}
