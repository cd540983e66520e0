package rule

// Builtin returns the built-in rule catalog. Every rule is a declarative
// definition: a detection pattern, an optional fix template expanded against
// the pattern's capture groups, and activation metadata. Rules carrying
// environment tags only activate when the environment detector reports a
// matching tag; untagged rules are environment-agnostic.
func Builtin() []Definition {
	return []Definition{
		// generic style
		{ID: "assign_spacing", Category: CategoryStyle, Description: "missing space around assignment operator", Pattern: `(?m)^([ \t]*)([A-Za-z_][\w.]*)=([^=\s][^\n]*)$`, FixTemplate: `${1}${2} = ${3}`, Priority: 50, InitialConfidence: 0.9, Severity: SeverityWarning},
		{ID: "comparison_spacing", Category: CategoryStyle, Description: "missing space around comparison operator", Pattern: `(\w)==(\w)`, FixTemplate: `${1} == ${2}`, Priority: 20, InitialConfidence: 0.55, Severity: SeverityInfo},
		{ID: "trailing_whitespace", Category: CategoryStyle, Description: "trailing whitespace", Pattern: `(?m)[ \t]+$`, FixTemplate: ``, Priority: 10, InitialConfidence: 0.95, Severity: SeverityInfo},
		{ID: "excess_blank_lines", Category: CategoryStyle, Description: "more than two consecutive blank lines", Pattern: `\n{4,}`, FixTemplate: "\n\n\n", Priority: 10, InitialConfidence: 0.8, Severity: SeverityInfo},
		{ID: "long_line", Category: CategoryStyle, Description: "line exceeds 120 characters", Pattern: `(?m)^.{121,}$`, DetectOnly: true, Priority: 5, InitialConfidence: 0.9, Severity: SeverityInfo},
		{ID: "fixme_marker", Category: CategoryStyle, Description: "unresolved FIXME marker", Pattern: `(?i)\bFIXME\b`, DetectOnly: true, Priority: 5, InitialConfidence: 0.9, Severity: SeverityInfo},
		{ID: "hardcoded_aws_key", Category: CategoryBug, Description: "hardcoded AWS access key", Pattern: `aws_access_key_id\s*=\s*['"][A-Z0-9]{16,}['"]`, DetectOnly: true, Priority: 90, InitialConfidence: 0.95, Severity: SeverityError},

		// python correctness
		{ID: "py_is_none", Category: CategoryBug, Description: `use "is" for None comparison`, Pattern: `([\w.]+)\s*==\s*None`, FixTemplate: `${1} is None`, Priority: 80, EnvironmentTags: []string{"python"}, InitialConfidence: 0.9, Severity: SeverityWarning},
		{ID: "py_is_not_none", Category: CategoryBug, Description: `use "is not" for None comparison`, Pattern: `([\w.]+)\s*!=\s*None`, FixTemplate: `${1} is not None`, Priority: 80, EnvironmentTags: []string{"python"}, InitialConfidence: 0.9, Severity: SeverityWarning},
		{ID: "py_if_true", Category: CategoryStyle, Description: `simplify "if x == True" to "if x"`, Pattern: `if\s+(\w+)\s*==\s*True:`, FixTemplate: `if ${1}:`, Priority: 40, EnvironmentTags: []string{"python"}, InitialConfidence: 0.85, Severity: SeverityWarning},
		{ID: "py_if_false", Category: CategoryStyle, Description: `simplify "if x == False" to "if not x"`, Pattern: `if\s+(\w+)\s*==\s*False:`, FixTemplate: `if not ${1}:`, Priority: 40, EnvironmentTags: []string{"python"}, InitialConfidence: 0.85, Severity: SeverityWarning},
		{ID: "py_not_in", Category: CategoryStyle, Description: `use "not in" membership test`, Pattern: `not\s+([\w.]+)\s+in\s+([\w.]+)`, FixTemplate: `${1} not in ${2}`, Priority: 40, EnvironmentTags: []string{"python"}, InitialConfidence: 0.8, Severity: SeverityWarning},
		{ID: "py_not_is", Category: CategoryStyle, Description: `use "is not" identity test`, Pattern: `not\s+([\w.]+)\s+is\s+([\w.]+)`, FixTemplate: `${1} is not ${2}`, Priority: 40, EnvironmentTags: []string{"python"}, InitialConfidence: 0.8, Severity: SeverityWarning},
		{ID: "py_bare_except", Category: CategoryBug, Description: "bare except clause hides all errors", Pattern: `(?m)^([ \t]*)except\s*:`, FixTemplate: `${1}except Exception:`, Priority: 70, EnvironmentTags: []string{"python"}, InitialConfidence: 0.75, Severity: SeverityWarning},
		{ID: "py_mutable_default_list", Category: CategoryBug, Description: "mutable list default argument", Pattern: `def\s+\w+\([^)]*=\s*\[\][^)]*\)`, DetectOnly: true, Priority: 75, EnvironmentTags: []string{"python"}, InitialConfidence: 0.9, Severity: SeverityWarning},
		{ID: "py_mutable_default_dict", Category: CategoryBug, Description: "mutable dict default argument", Pattern: `def\s+\w+\([^)]*=\s*\{\}[^)]*\)`, DetectOnly: true, Priority: 75, EnvironmentTags: []string{"python"}, InitialConfidence: 0.9, Severity: SeverityWarning},
		{ID: "py_assert_tuple", Category: CategoryBug, Description: "assert on a tuple is always true", Pattern: `(?m)^[ \t]*assert\s*\([^)]*,[^)]*\)\s*$`, DetectOnly: true, Priority: 80, EnvironmentTags: []string{"python"}, InitialConfidence: 0.85, Severity: SeverityError},
		{ID: "py_type_compare", Category: CategoryStyle, Description: "use isinstance instead of type comparison", Pattern: `type\(([\w.]+)\)\s*==\s*(\w+)\b`, FixTemplate: `isinstance(${1}, ${2})`, Priority: 50, EnvironmentTags: []string{"python"}, InitialConfidence: 0.7, Severity: SeverityWarning},
		{ID: "py_len_zero", Category: CategoryStyle, Description: "use falsiness instead of len(x) == 0", Pattern: `len\(([\w.]+)\)\s*==\s*0`, FixTemplate: `not ${1}`, Priority: 30, EnvironmentTags: []string{"python"}, InitialConfidence: 0.6, Severity: SeverityInfo},
		{ID: "py_semicolon", Category: CategoryStyle, Description: "superfluous trailing semicolon", Pattern: `(?m);[ \t]*$`, FixTemplate: ``, Priority: 20, EnvironmentTags: []string{"python"}, InitialConfidence: 0.85, Severity: SeverityInfo},
		{ID: "py_format_to_fstring", Category: CategoryStyle, Description: "convert .format() to f-string", Pattern: `"([^"{}]*)"\.format\(([^()]+)\)`, FixTemplate: `f"${1}{${2}}"`, Priority: 25, EnvironmentTags: []string{"python"}, InitialConfidence: 0.6, Severity: SeverityInfo},
		{ID: "py_append_loop", Category: CategoryPerf, Description: "append in loop, consider a comprehension", Pattern: `for\s+\w+\s+in\s+[\w.()]+:\s*\n[ \t]+\w+\.append\(`, DetectOnly: true, Priority: 60, EnvironmentTags: []string{"python"}, InitialConfidence: 0.7, Severity: SeverityInfo},
		{ID: "py_open_read_inline", Category: CategoryBug, Description: "file opened without being closed", Pattern: `open\([^)]*\)\.read\(\)`, DetectOnly: true, Priority: 65, EnvironmentTags: []string{"python"}, InitialConfidence: 0.8, Severity: SeverityWarning},

		// python 2 compatibility
		{ID: "py2_print_statement", Category: CategoryCompat, Description: "python 2 print statement", Pattern: `(?m)^([ \t]*)print\s+"([^"\n]*)"[ \t]*$`, FixTemplate: `${1}print("${2}")`, Priority: 70, EnvironmentTags: []string{"python"}, InitialConfidence: 0.85, Severity: SeverityError},
		{ID: "py2_has_key", Category: CategoryCompat, Description: "dict.has_key removed in python 3", Pattern: `([\w.]+)\.has_key\(([^)]+)\)`, FixTemplate: `${2} in ${1}`, Priority: 70, EnvironmentTags: []string{"python"}, InitialConfidence: 0.85, Severity: SeverityError},
		{ID: "py2_xrange", Category: CategoryCompat, Description: "xrange removed in python 3", Pattern: `\bxrange\(`, FixTemplate: `range(`, Priority: 70, EnvironmentTags: []string{"python"}, InitialConfidence: 0.9, Severity: SeverityError},
		{ID: "py2_iteritems", Category: CategoryCompat, Description: "dict.iteritems removed in python 3", Pattern: `\.iteritems\(\)`, FixTemplate: `.items()`, Priority: 70, EnvironmentTags: []string{"python"}, InitialConfidence: 0.85, Severity: SeverityError},
		{ID: "py2_unicode_literal", Category: CategoryCompat, Description: "u-prefix string literal is redundant", Pattern: `\bu"([^"\n]*)"`, FixTemplate: `"${1}"`, Priority: 20, EnvironmentTags: []string{"python"}, InitialConfidence: 0.7, Severity: SeverityInfo},

		// django
		{ID: "django_render_to_response", Category: CategoryCompat, Description: "render_to_response is removed, use render", Pattern: `from django\.shortcuts import render_to_response`, FixTemplate: `from django.shortcuts import render`, Priority: 70, EnvironmentTags: []string{"django"}, InitialConfidence: 0.85, Severity: SeverityWarning},
		{ID: "django_render_to_response_call", Category: CategoryCompat, Description: "render_to_response call needs a request argument", Pattern: `render_to_response\(`, DetectOnly: true, Priority: 70, EnvironmentTags: []string{"django"}, InitialConfidence: 0.85, Severity: SeverityWarning},
		{ID: "django_ugettext", Category: CategoryCompat, Description: "ugettext renamed to gettext", Pattern: `from django\.utils\.translation import ugettext`, FixTemplate: `from django.utils.translation import gettext`, Priority: 70, EnvironmentTags: []string{"django"}, InitialConfidence: 0.85, Severity: SeverityWarning},
		{ID: "django_force_text", Category: CategoryCompat, Description: "force_text renamed to force_str", Pattern: `\bforce_text\b`, FixTemplate: `force_str`, Priority: 70, EnvironmentTags: []string{"django"}, InitialConfidence: 0.8, Severity: SeverityWarning},
		{ID: "django_smart_unicode", Category: CategoryCompat, Description: "smart_unicode renamed to smart_str", Pattern: `\bsmart_unicode\b`, FixTemplate: `smart_str`, Priority: 70, EnvironmentTags: []string{"django"}, InitialConfidence: 0.8, Severity: SeverityWarning},
		{ID: "django_conf_url", Category: CategoryCompat, Description: "django.conf.urls.url replaced by re_path", Pattern: `from django\.conf\.urls import url`, FixTemplate: `from django.urls import re_path`, Priority: 70, EnvironmentTags: []string{"django"}, InitialConfidence: 0.75, Severity: SeverityWarning},
		{ID: "django_count_via_len", Category: CategoryPerf, Description: "len(queryset) loads all rows, use count()", Pattern: `len\((\w+)\.objects\.all\(\)\)`, FixTemplate: `${1}.objects.count()`, Priority: 60, EnvironmentTags: []string{"django"}, InitialConfidence: 0.8, Severity: SeverityWarning},

		// flask
		{ID: "flask_ext_import", Category: CategoryCompat, Description: "flask.ext imports are removed", Pattern: `from flask\.ext\.(\w+) import`, FixTemplate: `from flask_${1} import`, Priority: 70, EnvironmentTags: []string{"flask"}, InitialConfidence: 0.85, Severity: SeverityError},
		{ID: "flask_debug_enabled", Category: CategoryBug, Description: "debug mode enabled in app.run", Pattern: `app\.run\([^)]*debug\s*=\s*True`, DetectOnly: true, Priority: 80, EnvironmentTags: []string{"flask"}, InitialConfidence: 0.9, Severity: SeverityWarning},

		// blender
		{ID: "blender_scene_update", Category: CategoryCompat, Description: "scene.update() removed, use view_layer.update()", Pattern: `bpy\.context\.scene\.update\(\)`, FixTemplate: `bpy.context.view_layer.update()`, Priority: 70, EnvironmentTags: []string{"blender"}, InitialConfidence: 0.8, Severity: SeverityWarning},
		{ID: "blender_user_preferences", Category: CategoryCompat, Description: "user_preferences renamed to preferences", Pattern: `context\.user_preferences`, FixTemplate: `context.preferences`, Priority: 70, EnvironmentTags: []string{"blender"}, InitialConfidence: 0.8, Severity: SeverityWarning},
		{ID: "blender_active_object", Category: CategoryCompat, Description: "scene.objects.active moved to view layer", Pattern: `scene\.objects\.active`, FixTemplate: `context.view_layer.objects.active`, Priority: 70, EnvironmentTags: []string{"blender"}, InitialConfidence: 0.6, Severity: SeverityWarning},

		// numpy
		{ID: "numpy_float_alias", Category: CategoryCompat, Description: "np.float alias removed", Pattern: `np\.float\b`, FixTemplate: `float`, Priority: 70, EnvironmentTags: []string{"numpy"}, InitialConfidence: 0.8, Severity: SeverityError},
		{ID: "numpy_int_alias", Category: CategoryCompat, Description: "np.int alias removed", Pattern: `np\.int\b`, FixTemplate: `int`, Priority: 70, EnvironmentTags: []string{"numpy"}, InitialConfidence: 0.8, Severity: SeverityError},
		{ID: "numpy_bool_alias", Category: CategoryCompat, Description: "np.bool alias removed", Pattern: `np\.bool\b`, FixTemplate: `bool`, Priority: 70, EnvironmentTags: []string{"numpy"}, InitialConfidence: 0.8, Severity: SeverityError},
		{ID: "numpy_object_alias", Category: CategoryCompat, Description: "np.object alias removed", Pattern: `np\.object\b`, FixTemplate: `object`, Priority: 70, EnvironmentTags: []string{"numpy"}, InitialConfidence: 0.8, Severity: SeverityError},
		{ID: "numpy_matrix", Category: CategoryCompat, Description: "np.matrix is deprecated, use ndarray", Pattern: `np\.matrix\(`, DetectOnly: true, Priority: 60, EnvironmentTags: []string{"numpy"}, InitialConfidence: 0.85, Severity: SeverityWarning},

		// pandas
		{ID: "pandas_ix", Category: CategoryCompat, Description: ".ix indexer removed, use .loc", Pattern: `\.ix\[`, FixTemplate: `.loc[`, Priority: 70, EnvironmentTags: []string{"pandas"}, InitialConfidence: 0.7, Severity: SeverityError},
		{ID: "pandas_append", Category: CategoryCompat, Description: "DataFrame.append removed, use pd.concat", Pattern: `\w+\.append\(\w+,\s*ignore_index\s*=\s*True\)`, DetectOnly: true, Priority: 70, EnvironmentTags: []string{"pandas"}, InitialConfidence: 0.8, Severity: SeverityWarning},

		// requests
		{ID: "requests_no_timeout", Category: CategoryBug, Description: "request without a timeout can hang forever", Pattern: `requests\.(get|post|put|delete)\("[^"]*"\)`, DetectOnly: true, Priority: 70, EnvironmentTags: []string{"requests"}, InitialConfidence: 0.85, Severity: SeverityWarning},
		{ID: "requests_verify_false", Category: CategoryBug, Description: "TLS verification disabled", Pattern: `verify\s*=\s*False`, DetectOnly: true, Priority: 85, EnvironmentTags: []string{"requests"}, InitialConfidence: 0.9, Severity: SeverityError},

		// pytorch
		{ID: "torch_variable", Category: CategoryCompat, Description: "autograd.Variable is a no-op wrapper", Pattern: `torch\.autograd\.Variable\(([^()]+)\)`, FixTemplate: `${1}`, Priority: 60, EnvironmentTags: []string{"pytorch"}, InitialConfidence: 0.7, Severity: SeverityWarning},
		{ID: "torch_volatile", Category: CategoryCompat, Description: "volatile flag replaced by torch.no_grad()", Pattern: `volatile\s*=\s*True`, DetectOnly: true, Priority: 60, EnvironmentTags: []string{"pytorch"}, InitialConfidence: 0.8, Severity: SeverityWarning},

		// tensorflow
		{ID: "tf_session", Category: CategoryCompat, Description: "tf.Session removed in TF2", Pattern: `tf\.Session\(`, DetectOnly: true, Priority: 70, EnvironmentTags: []string{"tensorflow"}, InitialConfidence: 0.9, Severity: SeverityError},
		{ID: "tf_placeholder", Category: CategoryCompat, Description: "tf.placeholder removed in TF2", Pattern: `tf\.placeholder\(`, DetectOnly: true, Priority: 70, EnvironmentTags: []string{"tensorflow"}, InitialConfidence: 0.9, Severity: SeverityError},

		// opencv
		{ID: "opencv_load_image_const", Category: CategoryCompat, Description: "CV_LOAD_IMAGE constants renamed to IMREAD", Pattern: `cv2\.CV_LOAD_IMAGE_COLOR`, FixTemplate: `cv2.IMREAD_COLOR`, Priority: 70, EnvironmentTags: []string{"opencv"}, InitialConfidence: 0.85, Severity: SeverityError},

		// javascript
		{ID: "js_var_declaration", Category: CategoryStyle, Description: "prefer let/const over var", Pattern: `(?m)^([ \t]*)var\s+(\w+)\s*=`, FixTemplate: `${1}let ${2} =`, Priority: 40, EnvironmentTags: []string{"javascript"}, InitialConfidence: 0.7, Severity: SeverityWarning},
		{ID: "js_loose_equality", Category: CategoryBug, Description: "loose equality, prefer ===", Pattern: `([^=!<>])==([^=])`, DetectOnly: true, Priority: 60, EnvironmentTags: []string{"javascript"}, InitialConfidence: 0.75, Severity: SeverityWarning},
		{ID: "js_console_log", Category: CategoryStyle, Description: "stray console.log", Pattern: `console\.log\(`, DetectOnly: true, Priority: 10, EnvironmentTags: []string{"javascript"}, InitialConfidence: 0.9, Severity: SeverityInfo},
		{ID: "js_new_array", Category: CategoryStyle, Description: "use [] instead of new Array()", Pattern: `new Array\(\)`, FixTemplate: `[]`, Priority: 30, EnvironmentTags: []string{"javascript"}, InitialConfidence: 0.8, Severity: SeverityInfo},
		{ID: "js_new_object", Category: CategoryStyle, Description: "use {} instead of new Object()", Pattern: `new Object\(\)`, FixTemplate: `{}`, Priority: 30, EnvironmentTags: []string{"javascript"}, InitialConfidence: 0.8, Severity: SeverityInfo},

		// go
		{ID: "go_time_since", Category: CategoryStyle, Description: "use time.Since instead of Now().Sub", Pattern: `time\.Now\(\)\.Sub\(([\w.]+)\)`, FixTemplate: `time.Since(${1})`, Priority: 40, EnvironmentTags: []string{"go"}, InitialConfidence: 0.85, Severity: SeverityWarning},
		{ID: "go_bool_compare_true", Category: CategoryStyle, Description: "redundant comparison with true", Pattern: `if ([\w.]+) == true \{`, FixTemplate: `if ${1} {`, Priority: 40, EnvironmentTags: []string{"go"}, InitialConfidence: 0.85, Severity: SeverityWarning},
		{ID: "go_bool_compare_false", Category: CategoryStyle, Description: "redundant comparison with false", Pattern: `if ([\w.]+) == false \{`, FixTemplate: `if !${1} {`, Priority: 40, EnvironmentTags: []string{"go"}, InitialConfidence: 0.85, Severity: SeverityWarning},
		{ID: "go_println_debug", Category: CategoryStyle, Description: "stray fmt.Println", Pattern: `fmt\.Println\(`, DetectOnly: true, Priority: 10, EnvironmentTags: []string{"go"}, InitialConfidence: 0.85, Severity: SeverityInfo},
	}
}
