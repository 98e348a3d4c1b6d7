// Package catalog contains the partitioning vocabulary of a relation catalog: the types of
// partitioning attributes, the values routed to partitions, and the capabilities (comparators and
// composite hashes) that partition schemes are built on. The scheme package builds hash and range
// partition scheme headers on top of these types, and is the place to start.
package catalog
