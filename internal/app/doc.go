// Package app holds the client-side synchronization protocol between the UI
// and the remote record store.
//
// Form owns the edit target, the two field values and the submit status.
// List owns the fetched collection and the loading flag. Session wires the
// two together: the Form publishes a Saved event and the Session answers it
// by clearing the edit target and refetching the List. The collection is
// never patched locally; every mutation is followed by a full refetch.
package app
