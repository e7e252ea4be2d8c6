/*
Package deed implements a registry of unique assets.

A token is identified by the pair (collection, token ID) and carries a
single owner address. The Registry controller exposes the usual
ownership surface: who owns a token, issuing a new one and transferring
an existing one. An owner can additionally approve one more address to
move the token on their behalf, which is how an escrow facility pulls
an asset into custody.
*/
package deed
