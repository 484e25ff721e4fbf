package config

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	Production  Environment = "production"
)

// Valid reports whether e is one of the known environments
func (e Environment) Valid() bool {
	switch e {
	case Development, Test, Production:
		return true
	default:
		return false
	}
}

// IsDevelopment returns true if the environment is development
func (e Environment) IsDevelopment() bool {
	return e == Development
}

// IsTest returns true if the environment is test
func (e Environment) IsTest() bool {
	return e == Test
}

// IsProduction returns true if the environment is production
func (e Environment) IsProduction() bool {
	return e == Production
}
