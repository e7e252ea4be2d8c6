/*

Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each extension keeps its configuration as a singleton entity that is
loaded from the genesis file and can later be patched with an update
message signed by the configuration owner.

*/
package gconf
