package model

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// DeploymentStatus describes where a resource is in its provisioning lifecycle.
type DeploymentStatus string

var (
	// DeploymentDeploying marks a resource whose provisioning has been requested.
	DeploymentDeploying DeploymentStatus = "Deploying"
	// DeploymentRunning marks a resource ready to serve its owner.
	DeploymentRunning DeploymentStatus = "Running"
	// DeploymentFailed marks a resource whose creation hook failed. Terminal.
	DeploymentFailed DeploymentStatus = "Failed"
	// DeploymentClosed marks a resource whose agreement has been closed. Terminal.
	DeploymentClosed DeploymentStatus = "Closed"
)

// PrivateFieldPrefix marks detail fields visible to the operator only.
const PrivateFieldPrefix = "_"

// DefaultGroupName is assigned to every new resource.
const DefaultGroupName = "default"

// ResourceDetails is what a provider hook reports about a resource.
// Name and Status are owned by the state machine and stored in columns; Fields are stored as-is.
type ResourceDetails struct {
	Status DeploymentStatus
	Name   string
	Fields map[string]any
}

// Resource is the off-chain mirror of a provisioned service instance backing one agreement.
type Resource struct {
	ID               uint32           `json:"id"`
	ContractAddress  common.Address   `json:"contractAddress"`
	Name             string           `json:"name"`
	DeploymentStatus DeploymentStatus `json:"deploymentStatus"`
	Details          map[string]any   `json:"details"`
	GroupName        string           `json:"groupName"`
	OwnerAddress     common.Address   `json:"ownerAddress"`
	OfferID          uint32           `json:"offerId"`
	ProviderID       uint32           `json:"providerId"`
	IsActive         bool             `json:"isActive"`
}

// ResourceKey identifies a resource across contracts.
type ResourceKey struct {
	ID       uint32
	Contract common.Address
}

// Key returns the identity of the resource.
func (r Resource) Key() ResourceKey {
	return ResourceKey{ID: r.ID, Contract: r.ContractAddress}
}

// StripPrivate returns a copy of details without operator-only fields.
func StripPrivate(details map[string]any) map[string]any {
	out := make(map[string]any, len(details))
	for name, value := range details {
		if strings.HasPrefix(name, PrivateFieldPrefix) {
			continue
		}
		out[name] = value
	}
	return out
}
