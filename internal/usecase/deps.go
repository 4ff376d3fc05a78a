package usecase

//go:generate mockery --name=sessionRepoDep --dir=. --output=../../mocks/usecase --outpkg=usecase --with-expecter

// sessionRepoDep exists for mock generation.
type sessionRepoDep interface { //nolint: unused // used by mockery
	sessionRepo
}
