package gfxcontext

// defaultVertexSrc and defaultFragmentSrc are the one shader template every
// Context registers at construction. Two compiled variants are derived from
// it: the flat-color default and a TEXTURED define for draw_image/fill_text,
// so [github.com/gogpu/gg/shadermgr] hands back two distinct
// ShaderProgramHandles (and therefore two distinct MaterialKeys) from a
// single registered source, without a second Register call.
const defaultVertexSrc = `
attribute vec2 aPos;
attribute vec4 aColor;
attribute vec2 aUV;
uniform mat3 uTransform;
varying vec4 vColor;
varying vec2 vUV;
void main() {
    vColor = aColor;
    vUV = aUV;
}
`

const defaultFragmentSrc = `
#ifdef TEXTURED
uniform sampler2D uTexture;
#endif
varying vec4 vColor;
varying vec2 vUV;
void main() {
    vec4 color = vColor;
#ifdef TEXTURED
    color *= texture2D(uTexture, vUV);
#endif
    gl_FragColor = color;
}
`
