package wire

import "github.com/samber/lo"

var namedPermissions = []struct {
	bit  Permission
	name string
}{
	{PermissionMakeCredential, "makeCredential"},
	{PermissionGetAssertion, "getAssertion"},
	{PermissionCredentialManagement, "credentialManagement"},
	{PermissionBioEnrollment, "bioEnrollment"},
	{PermissionLargeBlobWrite, "largeBlobWrite"},
	{PermissionAuthenticatorConfiguration, "authenticatorConfiguration"},
	{PermissionPersistentCredentialManagementReadOnly, "persistentCredentialManagementReadOnly"},
}

// PermissionNames renders p's set bits as their CTAP2 permission names, in
// declaration order, for use in log lines and error messages where a raw
// bitmask is unreadable.
func PermissionNames(p Permission) []string {
	return lo.FilterMap(namedPermissions, func(np struct {
		bit  Permission
		name string
	}, _ int) (string, bool) {
		return np.name, p&np.bit != 0
	})
}
