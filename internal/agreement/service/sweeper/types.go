package sweeper

import (
	"time"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/provider"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Registrations interface {
		All() []provider.Registration
	}

	Metrics interface {
		ObserveTick(started time.Time)
		ObserveClose(err error)
	}
)
