package follow

// SetMaxRecipes lowers the recipe preview cap for tests.
func (s *Service) SetMaxRecipes(n int) {
	s.maxRecipes = n
}
