package app

import "github.com/PauKap/rupees/internal/domain"

// Role checks guard every service entry point. Listing products is open
// to any authenticated caller; everything else is role-gated and, where
// state is owned, owner-gated at the point of mutation.

func requireBuyer(caller domain.User) error {
	if caller.ID == "" || caller.Role != domain.RoleBuyer {
		return domain.ErrForbidden
	}
	return nil
}

func requireSeller(caller domain.User) error {
	if caller.ID == "" || caller.Role != domain.RoleSeller {
		return domain.ErrForbidden
	}
	return nil
}
