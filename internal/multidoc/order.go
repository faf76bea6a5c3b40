// Package multidoc joins rendered documents into one stream and reorders
// document lists by a discriminator field.
package multidoc

import (
	"slices"

	"github.com/KimNorgaard/go-huml/annotated"
)

// KindOrder ranks documents by the string value of one top-level field.
// The zero value ranks nothing and leaves documents in place.
type KindOrder struct {
	field string
	kinds []string
	rank  map[string]int
}

// NewKindOrder returns an order on field with kinds ranked by position.
// Repeated kinds keep their first position.
func NewKindOrder(field string, kinds ...string) KindOrder {
	o := KindOrder{
		field: field,
		kinds: slices.Clone(kinds),
		rank:  make(map[string]int, len(kinds)),
	}
	for i, k := range kinds {
		if _, dup := o.rank[k]; !dup {
			o.rank[k] = i
		}
	}
	return o
}

var installOrder = []string{
	"Namespace",
	"NetworkPolicy",
	"ResourceQuota",
	"LimitRange",
	"PodSecurityPolicy",
	"PodDisruptionBudget",
	"ServiceAccount",
	"Secret",
	"SecretList",
	"ConfigMap",
	"StorageClass",
	"PersistentVolume",
	"PersistentVolumeClaim",
	"CustomResourceDefinition",
	"ClusterRole",
	"ClusterRoleList",
	"ClusterRoleBinding",
	"ClusterRoleBindingList",
	"Role",
	"RoleList",
	"RoleBinding",
	"RoleBindingList",
	"Service",
	"DaemonSet",
	"Pod",
	"ReplicationController",
	"ReplicaSet",
	"Deployment",
	"HorizontalPodAutoscaler",
	"StatefulSet",
	"Job",
	"CronJob",
	"IngressClass",
	"Ingress",
	"APIService",
}

// DefaultKindOrder orders Kubernetes manifests by "kind" in the order
// resources are usually installed.
func DefaultKindOrder() KindOrder {
	return NewKindOrder("kind", installOrder...)
}

// Field returns the discriminator field.
func (o KindOrder) Field() string { return o.field }

// Kinds returns a copy of the ranked values.
func (o KindOrder) Kinds() []string { return slices.Clone(o.kinds) }

// Rank returns the position of kind, or the number of ranked kinds when it
// is unknown.
func (o KindOrder) Rank(kind string) int {
	if r, ok := o.rank[kind]; ok {
		return r
	}
	return len(o.kinds)
}

// Sort returns docs stably ordered by the rank of their discriminator.
// Documents without the field, or that are not mappings, rank last. docs
// is not modified.
func (o KindOrder) Sort(docs []any) []any {
	out := make([]any, len(docs))
	for i, j := range o.Permutation(docs) {
		out[i] = docs[j]
	}
	return out
}

// Permutation returns the indices of docs in sorted order, so that callers
// can reorder data kept alongside the documents.
func (o KindOrder) Permutation(docs []any) []int {
	idx := make([]int, len(docs))
	ranks := make([]int, len(docs))
	for i, d := range docs {
		idx[i] = i
		ranks[i] = o.Rank(o.discriminator(d))
	}
	if o.field == "" {
		return idx
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return ranks[a] - ranks[b]
	})
	return idx
}

func (o KindOrder) discriminator(doc any) string {
	var v any
	switch t := doc.(type) {
	case *annotated.Map:
		v, _ = t.Get(o.field)
	case map[string]any:
		v = t[o.field]
	}
	s, _ := v.(string)
	return s
}
