/*
Package session orchestrates access to stored playback snapshots.

It serialises concurrent saves of the same session inside one process and,
when a DistributedLocker is configured, across replicas sharing a store.
*/
package session
