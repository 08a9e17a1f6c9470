/*
Package main is the application package for the walletkeep CLI. walletkeep is
the persistence core of a cryptocurrency wallet: a JSON-aware key/value vault
over a pluggable backend store, and a versioned migration runner that brings
persisted wallet data up to the current build's schema before the application
signals readiness.

You can use the repository roughly for three purposes:

1. As a library: the vault, storage, seal and backup packages are what the
wallet application embeds. A wallet opens its backend with storage.Open,
hands it to vault.Open together with its build version and the registered
migration steps, and awaits Ready before touching storage.

2. As a CLI tool for inspecting and maintaining a vault file: listing keys,
dumping stored accounts, wiping storage and rehearsing upgrades against
copied data.

3. As the home of the migration step catalog: each supported upgrade path is
one Step in the vault package, and new data-shape changes land there.

# Sub-packages

	vault    the storage adapter and the migration runner
	storage  backend stores: bolt file, in-memory fallback, host bridge
	seal     AEAD encryption at rest for backend values
	user     the persisted wallet account schema
	backup   scheduled snapshots of the vault file
	cmds     command logic of the CLI
	cmd      the cobra command layer
*/
package main
