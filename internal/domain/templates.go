package domain

import "fmt"

// scaffoldPubspec is the scaffold sub-project's dependency manifest. The
// target project is wired in as a path dependency so the generated package:
// imports resolve against the code being previewed.
func scaffoldPubspec(projectName string) string {
	return fmt.Sprintf(`name: widget_preview_scaffold
description: Throwaway harness for widget previews. Generated by wpreview.
publish_to: none

environment:
  sdk: ^3.0.0

dependencies:
  flutter:
    sdk: flutter
  %s:
    path: ../../
`, projectName)
}

const widgetPreviewTemplate = `import 'package:flutter/widgets.dart';

/// A single previewable widget with an optional display name.
class WidgetPreview {
  const WidgetPreview(this.child, {this.name});

  final Widget child;
  final String? name;
}
`

const mainTemplate = `import 'package:flutter/material.dart';

import 'generated_preview.dart' as generated;
import 'widget_preview.dart';

void main() => runApp(const _PreviewApp());

class _PreviewApp extends StatelessWidget {
  const _PreviewApp();

  @override
  Widget build(BuildContext context) {
    final List<WidgetPreview> previews = generated.previews();

    return MaterialApp(
      title: 'Widget Previews',
      home: Scaffold(
        body: ListView(
          children: <Widget>[
            for (final WidgetPreview preview in previews)
              ListTile(
                title: Text(preview.name ?? ''),
                subtitle: Center(child: preview.child),
              ),
          ],
        ),
      ),
    );
  }
}
`
