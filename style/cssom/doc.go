/*
Package cssom abstracts a live, mutable CSS object model.

Styling code never talks to a concrete stylesheet implementation. Instead it
relies on interfaces StyleSheet and Declaration, which mirror the parts of
the browser CSSOM needed to project rule groups onto a stylesheet:

    insertRule(cssText, index)
    deleteRule(index)
    cssRules[index].style   → setProperty / getPropertyValue / removeProperty

Concrete implementations may be found in sub-packages (see package
douceuradapter for an in-memory stylesheet). Tests are free to substitute
their own fakes.

Implementations have to be safe for concurrent use: declarations of
different rules are written to by independent goroutines while rules are
inserted and deleted.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssom
