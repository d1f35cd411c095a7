// Package fixture builds the synthetic point-of-sale and warehouse datasets.
//
// Every producer draws from an explicit *Source instead of global random
// state. A Source is seeded, and Derive gives each artifact its own stream
// keyed by the artifact's identity, so a dataset is reproducible from its
// seed no matter how the artifacts are scheduled.
//
// The Pool is built once per run and only read afterwards; producers never
// reference a SKU that is not in it.
package fixture
