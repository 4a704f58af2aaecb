package ports

import "github.com/vncsmyrnk/quickpoll/internal/core/domain"

type IdentityAssigner interface {
	// Assign returns the voter token carried by presented, or mints a new
	// one when presented is empty or was not issued by this assigner.
	Assign(presented string) (domain.VoterIdentity, error)
}
