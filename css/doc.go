/*
Package css provides helpers to produce CSS value strings: lengths in
various units and an option type for dimensions, which may be fixed,
auto, inherit or initial.

Values produced here are plain strings, ready to be handed to a style.Group.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package css
