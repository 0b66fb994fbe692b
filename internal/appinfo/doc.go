// Package appinfo describes the running application: its name, vendor,
// version and the folders it keeps settings and data in.
package appinfo
