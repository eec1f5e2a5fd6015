package viewmodels

import (
	"github.com/dmitrijs2005/gophshelf/internal/client/repositories/auth"
)

// Destination is the first screen shown after start-up.
type Destination string

const (
	DestinationLogin   Destination = "login"
	DestinationLibrary Destination = "library"
)

type MainViewModel struct {
	auth auth.Repository
}

func NewMainViewModel(a auth.Repository) *MainViewModel {
	return &MainViewModel{auth: a}
}

// StartDestination is the library for a signed-in reader, login otherwise.
func (vm *MainViewModel) StartDestination() Destination {
	ok, err := vm.auth.IsUserAuth()
	if err != nil || !ok {
		return DestinationLogin
	}
	return DestinationLibrary
}
