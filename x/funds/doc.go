/*
Package funds keeps a single-denomination balance ledger.

Every account is a Wallet stored under the account address. The
Controller moves value between wallets and is the only place where
balances are mutated, so payment flows in other extensions stay
oblivious to the storage layout.
*/
package funds
