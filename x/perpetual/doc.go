/*
Package perpetual implements a perpetual sale engine for unique
assets, based on a continuously collected self assessment tax.

The holder of an asset declares its price and keeps a prepaid tax
deposit. Tax accrues on the declared price and is collected lazily,
whenever any operation touches the asset. Anyone willing to pay the
declared price displaces the holder at any time. When the deposit runs
out the asset forecloses and reverts to custody.

Everyone who ever held or funded an asset is recorded as a patron.
Their accumulated contributions drive an automatically summoned
revenue sharing collective, rebalanced after every sale so that
membership tokens mirror contributions.
*/
package perpetual
