/*
Package collective implements a factory for revenue sharing
organizations and their membership token ledger.

A collective is summoned with a fixed voting period and quorum and an
initial member list. Membership tokens can afterwards be minted and
burned by the summoning facility to keep them in line with each
member's contribution. Voting itself happens outside of this package.
*/
package collective
