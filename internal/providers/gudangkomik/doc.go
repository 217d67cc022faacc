// Package gudangkomik implements providers.Source for the GudangKomik
// catalog. The current and legacy site layouts share one implementation;
// everything that differs between them lives in a Variant table.
package gudangkomik
